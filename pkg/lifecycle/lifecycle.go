// Package lifecycle mediates between a container orchestrator and a
// long-running service process. It exposes the three HTTP probes an
// orchestrator uses to decide whether the process is alive, ready for
// traffic, and healthy, and it drives a disciplined graceful-shutdown
// protocol: a grace delay that lets upstream proxies stop routing new
// traffic, a drain of user-declared in-flight-work beacons, and a
// sequential run of user-registered cleanup handlers, before finally
// forcing process exit.
//
// Process-signal wiring, log sinks, and the process-termination
// primitive are all injected collaborators -- see Option -- rather than
// baked into the core. A companion pkg/signals adapter wires OS signals
// to Shutdown for callers who want that behavior.
package lifecycle

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Kikobeats/lightship/pkg/logger"
)

// Lifecycle is the façade composing State, the beacon and handler
// registries, the probe server and the shutdown coordinator. Every entity
// is owned by exactly one Lifecycle instance; nothing here is a
// process-wide singleton, so a process may run several independent
// lifecycles (e.g. in tests) each on its own port.
type Lifecycle struct {
	state       *stateMachine
	beacons     *beaconRegistry
	handlers    *handlerRegistry
	probe       *ProbeServer
	coordinator *Coordinator
	log         logger.Logger
	signals     []os.Signal
}

// New constructs a Lifecycle and starts its probe server synchronously:
// by the time New returns, the probe server is already listening.
func New(opts ...Option) (*Lifecycle, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNoopLogger()
	}
	if cfg.port == 0 && !cfg.detect {
		return nil, fmt.Errorf("lifecycle: port is unset and detect is disabled")
	}

	state := newStateMachine()
	beacons := newBeaconRegistry()
	handlers := newHandlerRegistry()

	addr := fmt.Sprintf(":%d", cfg.port)
	probe, err := newProbeServer(state, cfg.logger, addr)
	if err != nil {
		return nil, err
	}

	coordinator := newCoordinator(state, beacons, handlers, probe, cfg.logger, cfg.gracePeriod, cfg.timeout, cfg.terminate)

	cfg.logger.Info("lifecycle started", zap.String("addr", probe.Addr()))

	return &Lifecycle{
		state:       state,
		beacons:     beacons,
		handlers:    handlers,
		probe:       probe,
		coordinator: coordinator,
		log:         cfg.logger,
		signals:     cfg.signals,
	}, nil
}

// SignalReady moves the lifecycle NOT_READY -> READY. No-op once shutdown
// has begun.
func (l *Lifecycle) SignalReady() {
	l.state.signalReady()
	l.log.Info("signalled ready")
}

// SignalNotReady moves the lifecycle READY -> NOT_READY. No-op once
// shutdown has begun.
func (l *Lifecycle) SignalNotReady() {
	l.state.signalNotReady()
	l.log.Info("signalled not ready")
}

// RegisterShutdownHandler appends a cleanup action to be run, in
// registration order, during shutdown. Registering after the coordinator
// has taken its snapshot succeeds but the handler is never invoked.
func (l *Lifecycle) RegisterShutdownHandler(h ShutdownHandler) {
	l.handlers.register(h)
}

// CreateBeacon registers one outstanding unit of work; shutdown won't run
// its handlers until every created beacon has been retired with Die. ctx
// is an optional opaque value kept for diagnostics. Fails with
// ErrLifecycleFinalized once the coordinator has begun invoking shutdown
// handlers.
func (l *Lifecycle) CreateBeacon(ctx any) (*Beacon, error) {
	b, err := l.beacons.create(ctx)
	if err != nil {
		return nil, err
	}
	l.log.Debug("beacon created")
	return b, nil
}

// Shutdown initiates the shutdown coordinator. It is idempotent: calling
// it more than once returns the same completion channel without
// re-running the sequence. The returned channel closes once the probe
// server has been closed; terminate is invoked immediately after.
func (l *Lifecycle) Shutdown() <-chan struct{} {
	return l.coordinator.Shutdown()
}

// IsServerReady reports whether State is anything but NOT_READY, with
// one twist: during the post-Shutdown grace period it reads false
// regardless of the pre-shutdown state. See the package doc on
// stateMachine for why.
func (l *Lifecycle) IsServerReady() bool {
	return l.state.isReady()
}

// IsServerShuttingDown reports whether State has actually transitioned to
// SHUTTING_DOWN (false during the grace period, even though shutdown has
// been requested).
func (l *Lifecycle) IsServerShuttingDown() bool {
	return l.state.isShuttingDown()
}

// Addr returns the probe server's bound address, e.g. for tests driving
// HTTP requests against an ephemeral port.
func (l *Lifecycle) Addr() string {
	return l.probe.Addr()
}

// Signals returns the set of process signals configured via WithSignals
// (default SIGTERM, SIGINT, SIGHUP), for an external signal-source
// adapter to wire up.
func (l *Lifecycle) Signals() []os.Signal {
	return l.signals
}
