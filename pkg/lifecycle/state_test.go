package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "SERVER_IS_NOT_READY", StateNotReady.String())
	assert.Equal(t, "SERVER_IS_READY", StateReady.String())
	assert.Equal(t, "SERVER_IS_SHUTTING_DOWN", StateShuttingDown.String())
}

func TestStateMachineInitial(t *testing.T) {
	sm := newStateMachine()
	assert.False(t, sm.isReady())
	assert.False(t, sm.isShuttingDown())
	assert.Equal(t, StateNotReady, sm.raw())
}

func TestStateMachineReadyRoundTrip(t *testing.T) {
	sm := newStateMachine()

	sm.signalReady()
	assert.True(t, sm.isReady())
	assert.Equal(t, StateReady, sm.raw())

	sm.signalNotReady()
	assert.False(t, sm.isReady())
	assert.Equal(t, StateNotReady, sm.raw())
}

func TestStateMachineShutdownIsTerminal(t *testing.T) {
	sm := newStateMachine()
	sm.signalReady()

	sm.beginShutdown()
	assert.True(t, sm.isShuttingDown())

	// signalReady/signalNotReady become no-ops once shutting down.
	sm.signalNotReady()
	assert.Equal(t, StateShuttingDown, sm.raw())

	sm.signalReady()
	assert.Equal(t, StateShuttingDown, sm.raw())
}

func TestStateMachinePendingGracePeriod(t *testing.T) {
	sm := newStateMachine()
	sm.signalReady()

	sm.markPending()
	// During the grace window both predicates read false even though the
	// raw state (what the probe server reads) is still READY.
	assert.False(t, sm.isReady())
	assert.False(t, sm.isShuttingDown())
	assert.Equal(t, StateReady, sm.raw())

	sm.beginShutdown()
	// Once the transition lands, isReady flips true too -- state != NotReady.
	assert.True(t, sm.isReady())
	assert.True(t, sm.isShuttingDown())
}
