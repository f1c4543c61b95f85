package lifecycle

import (
	"context"
	"sync"
)

// ShutdownHandler is a user-registered cleanup action. It may block; the
// coordinator awaits it before moving on to the next handler. A returned
// error is logged and does not interrupt the rest of the sequence.
type ShutdownHandler func(ctx context.Context) error

// handlerRegistry keeps shutdown handlers in registration order. There is
// no removal operation: once registered, a handler stays until the
// coordinator takes its one and only snapshot.
type handlerRegistry struct {
	mu       sync.Mutex
	handlers []ShutdownHandler
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{}
}

func (r *handlerRegistry) register(h ShutdownHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

// snapshot returns the handlers registered so far, in order. Registering
// a handler after the coordinator has taken its snapshot succeeds but the
// handler is never invoked -- the coordinator snapshots only once.
func (r *handlerRegistry) snapshot() []ShutdownHandler {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ShutdownHandler, len(r.handlers))
	copy(out, r.handlers)
	return out
}
