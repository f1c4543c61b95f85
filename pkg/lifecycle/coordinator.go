package lifecycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kikobeats/lightship/pkg/logger"
)

// Coordinator owns the shutdown procedure: grace delay, beacon drain,
// sequential handler invocation, probe server close, terminate. It is
// idempotent and watched by a best-effort wall-clock timeout.
type Coordinator struct {
	state    *stateMachine
	beacons  *beaconRegistry
	handlers *handlerRegistry
	probe    *ProbeServer
	log      logger.Logger

	gracePeriod time.Duration
	timeout     time.Duration
	terminate   func()

	mu   sync.Mutex
	done chan struct{}

	closeDoneOnce  sync.Once
	closeProbeOnce sync.Once
	terminateOnce  sync.Once
}

func newCoordinator(
	state *stateMachine,
	beacons *beaconRegistry,
	handlers *handlerRegistry,
	probe *ProbeServer,
	log logger.Logger,
	gracePeriod, timeout time.Duration,
	terminate func(),
) *Coordinator {
	return &Coordinator{
		state:       state,
		beacons:     beacons,
		handlers:    handlers,
		probe:       probe,
		log:         log,
		gracePeriod: gracePeriod,
		timeout:     timeout,
		terminate:   terminate,
	}
}

// Shutdown triggers the shutdown sequence and returns a channel that's
// closed once the probe server has been closed (step 6 of the sequence).
// Repeated calls return the same channel without re-running anything.
func (c *Coordinator) Shutdown() <-chan struct{} {
	c.mu.Lock()
	if c.done != nil {
		ch := c.done
		c.mu.Unlock()
		return ch
	}
	c.done = make(chan struct{})
	ch := c.done
	c.mu.Unlock()

	c.state.markPending()
	c.log.Info("shutdown requested")

	watchdog := time.AfterFunc(c.timeout, func() {
		c.log.Warn("shutdown sequence exceeded timeout, forcing termination", zap.Duration("timeout", c.timeout))
		c.forceTerminate()
	})

	go func() {
		c.run()
		watchdog.Stop()
	}()

	return ch
}

func (c *Coordinator) run() {
	c.log.Info("grace period started", zap.Duration("gracePeriod", c.gracePeriod))
	if c.gracePeriod > 0 {
		time.Sleep(c.gracePeriod)
	}
	c.log.Info("grace period ended")

	c.state.beginShutdown()

	c.beacons.awaitEmpty(context.Background())
	c.beacons.finalize()

	for _, h := range c.handlers.snapshot() {
		c.invokeHandler(h)
	}

	c.closeProbe()
	c.closeDone()

	c.terminateOnce.Do(func() {
		c.terminate()
		c.log.Info("terminated")
	})
}

func (c *Coordinator) invokeHandler(h ShutdownHandler) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("shutdown handler panicked", zap.Any("panic", r))
		}
	}()

	if err := h(context.Background()); err != nil {
		c.log.Error("shutdown handler failed", zap.Error(err))
		return
	}
	c.log.Info("shutdown handler invoked")
}

func (c *Coordinator) closeProbe() {
	c.closeProbeOnce.Do(func() {
		if err := c.probe.Close(); err != nil {
			c.log.Warn("probe server close reported an error", zap.Error(err))
		}
		c.log.Info("probe server closed")
	})
}

func (c *Coordinator) closeDone() {
	c.closeDoneOnce.Do(func() {
		close(c.done)
	})
}

// forceTerminate is invoked by the watchdog when the shutdown sequence
// overruns its timeout. Individual handlers are never cancelled; they are
// simply abandoned.
func (c *Coordinator) forceTerminate() {
	c.closeProbe()
	c.closeDone()
	c.terminateOnce.Do(func() {
		c.terminate()
		c.log.Info("terminated")
	})
}
