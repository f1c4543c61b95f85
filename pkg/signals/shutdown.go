// Package signals is the external adapter that wires OS process signals
// to a lifecycle.Lifecycle's Shutdown. The lifecycle core never imports
// os/signal itself -- signal handling is deliberately kept outside the
// core and left to whichever caller wants it.
package signals

import (
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Kikobeats/lightship/pkg/lifecycle"
	"github.com/Kikobeats/lightship/pkg/logger"
)

// Notify starts listening for sig (or, if empty, the lifecycle's own
// configured signal set from WithSignals) and calls lc.Shutdown on the
// first one received. A second signal forces an immediate os.Exit(1),
// since a caller sending SIGTERM twice is explicitly asking not to wait
// for the graceful sequence any longer.
//
// Notify returns immediately; the notification loop runs in its own
// goroutine for the lifetime of the process.
func Notify(lc *lifecycle.Lifecycle, log logger.Logger, sig ...os.Signal) {
	if len(sig) == 0 {
		sig = lc.Signals()
	}

	c := make(chan os.Signal, 2)
	signal.Notify(c, sig...)

	go func() {
		first := <-c
		log.Info("received shutdown signal", zap.String("signal", first.String()))
		lc.Shutdown()

		second := <-c
		log.Warn("received second shutdown signal, forcing immediate exit", zap.String("signal", second.String()))
		os.Exit(1)
	}()
}
