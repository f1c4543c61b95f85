package lifecycle

import "sync/atomic"

// State is the lifecycle's single enumerated value. It moves between
// StateNotReady and StateReady, and from either to StateShuttingDown;
// once it reaches StateShuttingDown it never leaves.
type State int32

const (
	// StateNotReady is the initial state: the process should not receive
	// traffic and is not considered healthy.
	StateNotReady State = iota
	// StateReady means the process is healthy and ready for traffic.
	StateReady
	// StateShuttingDown is terminal: the process is draining.
	StateShuttingDown
)

// String renders the state the way probes report it on the wire.
func (s State) String() string {
	switch s {
	case StateReady:
		return "SERVER_IS_READY"
	case StateShuttingDown:
		return "SERVER_IS_SHUTTING_DOWN"
	default:
		return "SERVER_IS_NOT_READY"
	}
}

// stateMachine guards State transitions and the grace-period predicate
// quirk: while a shutdown is pending but the
// grace delay hasn't elapsed yet, isServerReady and isServerShuttingDown
// both read false even though the underlying State (read by the probe
// server) hasn't moved off its pre-shutdown value.
type stateMachine struct {
	current atomic.Int32
	pending atomic.Bool
}

func newStateMachine() *stateMachine {
	sm := &stateMachine{}
	sm.current.Store(int32(StateNotReady))
	return sm
}

// raw is read by the probe server; it always reflects the true,
// pre-grace-period state.
func (sm *stateMachine) raw() State {
	return State(sm.current.Load())
}

// signalReady moves NotReady -> Ready. No-op once shutdown has begun.
func (sm *stateMachine) signalReady() {
	sm.current.CompareAndSwap(int32(StateNotReady), int32(StateReady))
}

// signalNotReady moves Ready -> NotReady. No-op once shutdown has begun.
func (sm *stateMachine) signalNotReady() {
	sm.current.CompareAndSwap(int32(StateReady), int32(StateNotReady))
}

// markPending flags that shutdown has been requested, ahead of the grace
// delay elapsing. Cleared by beginShutdown.
func (sm *stateMachine) markPending() {
	sm.pending.Store(true)
}

// beginShutdown performs the one-way transition to StateShuttingDown and
// clears the pending flag in the same moment, so no reader ever observes
// pending==false with the state still unflipped.
func (sm *stateMachine) beginShutdown() {
	sm.current.Store(int32(StateShuttingDown))
	sm.pending.Store(false)
}

// isReady implements isServerReady: true whenever the state isn't
// NotReady, including during SHUTTING_DOWN -- a deliberately preserved
// quirk (see /ready in probe.go) -- except during the grace window, where
// it reads false regardless of the pre-shutdown state.
func (sm *stateMachine) isReady() bool {
	if sm.pending.Load() {
		return false
	}
	return State(sm.current.Load()) != StateNotReady
}

// isShuttingDown implements isServerShuttingDown.
func (sm *stateMachine) isShuttingDown() bool {
	if sm.pending.Load() {
		return false
	}
	return State(sm.current.Load()) == StateShuttingDown
}
