package lifecycle

import (
	"os"
	"syscall"
	"time"

	"github.com/Kikobeats/lightship/pkg/logger"
)

const (
	defaultPort        = 9000
	defaultTimeout     = 60 * time.Second
	defaultGracePeriod = 5 * time.Second
)

// options holds the lifecycle's ConfigOptions. Built from functional
// Options so library users never construct it directly.
type options struct {
	port        int
	detect      bool
	timeout     time.Duration
	gracePeriod time.Duration
	terminate   func()
	logger      logger.Logger
	signals     []os.Signal
}

// Option configures a Lifecycle at construction time.
type Option func(*options)

// WithPort sets the probe server's HTTP port. Pass 0 for an OS-assigned
// ephemeral port, useful in tests that need to introspect the bound
// address rather than bind a fixed one.
func WithPort(port int) Option {
	return func(o *options) { o.port = port }
}

// WithDetect controls what New does when the resolved port is 0, which
// happens only when WithPort(0) is passed (an unconfigured port defaults
// to 9000). With
// detect true (the default), port 0 binds an OS-assigned ephemeral port,
// useful for tests that need to introspect the bound address. With
// detect false, New instead fails construction, for callers that want a
// missing port to be a configuration error rather than a silent fallback.
func WithDetect(detect bool) Option {
	return func(o *options) { o.detect = detect }
}

// WithTimeout sets the absolute upper bound on the shutdown sequence
// before terminate is forced regardless of outstanding handlers or
// beacons.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithGracePeriod sets the delay between Shutdown being requested and the
// state actually transitioning to SHUTTING_DOWN, giving upstream proxies
// time to stop routing new traffic first. Called kubeProxyTimeout (also
// preStopSleep) in some orchestrator writeups describing this same delay.
func WithGracePeriod(d time.Duration) Option {
	return func(o *options) { o.gracePeriod = d }
}

// WithTerminate overrides the collaborator invoked to force process exit.
// Tests typically supply a recording stub here instead of the default,
// which calls os.Exit(0).
func WithTerminate(fn func()) Option {
	return func(o *options) { o.terminate = fn }
}

// WithLogger overrides the structured logger collaborator. Defaults to a
// no-op logger if unset.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSignals records which process signals an external signal-source
// adapter (see pkg/signals) should treat as shutdown triggers. The core
// never touches os/signal itself; this is purely a convenience so the
// desired signal set can travel alongside the rest of the configuration.
func WithSignals(sig ...os.Signal) Option {
	return func(o *options) { o.signals = sig }
}

func defaultOptions() *options {
	return &options{
		port:        defaultPort,
		detect:      true,
		timeout:     defaultTimeout,
		gracePeriod: defaultGracePeriod,
		terminate:   func() { os.Exit(0) },
		signals:     []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP},
	}
}
