package signals

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kikobeats/lightship/pkg/lifecycle"
	"github.com/Kikobeats/lightship/pkg/logger"
)

func TestNotifyTriggersShutdownOnSignal(t *testing.T) {
	lc, err := lifecycle.New(
		lifecycle.WithPort(0),
		lifecycle.WithGracePeriod(0),
		lifecycle.WithTerminate(func() {}),
	)
	require.NoError(t, err)

	Notify(lc, logger.NewNoopLogger(), syscall.SIGUSR1)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGUSR1))

	// Poll the state rather than calling lc.Shutdown, which would start the
	// sequence itself and pass without the signal.
	deadline := time.Now().Add(2 * time.Second)
	for !lc.IsServerShuttingDown() {
		if time.Now().After(deadline) {
			t.Fatal("lifecycle did not shut down after receiving the configured signal")
		}
		time.Sleep(10 * time.Millisecond)
	}

	assert.True(t, lc.IsServerShuttingDown())
}
