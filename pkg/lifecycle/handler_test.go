package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistrySnapshotPreservesOrder(t *testing.T) {
	r := newHandlerRegistry()

	var order []int
	r.register(func(context.Context) error { order = append(order, 1); return nil })
	r.register(func(context.Context) error { order = append(order, 2); return nil })
	r.register(func(context.Context) error { order = append(order, 3); return nil })

	for _, h := range r.snapshot() {
		_ = h(context.Background())
	}

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestHandlerRegistrySnapshotOnce(t *testing.T) {
	r := newHandlerRegistry()
	r.register(func(context.Context) error { return nil })

	snap := r.snapshot()
	assert.Len(t, snap, 1)

	// Registering after the snapshot was taken doesn't retroactively
	// appear in it.
	r.register(func(context.Context) error { return nil })
	assert.Len(t, snap, 1)
	assert.Len(t, r.snapshot(), 2)
}
