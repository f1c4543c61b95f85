// Package serve provides the command that boots the lightship demo: a
// lifecycle-managed HTTP server showing how the library's pieces --
// config, logger, probe server, beacons, shutdown handlers, signal
// wiring -- compose into a runnable process.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Kikobeats/lightship/internal/cfg"
	"github.com/Kikobeats/lightship/pkg/lifecycle"
	"github.com/Kikobeats/lightship/pkg/logger"
	"github.com/Kikobeats/lightship/pkg/signals"
)

const (
	defaultPort        = 9000
	defaultTimeout     = 60 * time.Second
	defaultGracePeriod = 5 * time.Second
)

var flags struct {
	port        int
	timeout     time.Duration
	gracePeriod time.Duration
	logFormat   string
	logLevel    string
}

// ServeCmd boots the demo HTTP server under a lifecycle manager.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a lifecycle-managed demo HTTP server",
	Long:  "Run a demo HTTP server wired through the lightship lifecycle manager: probes, beacons, shutdown handlers and signal handling all composed together.",
	RunE:  runServe,
}

//nolint:gochecknoinits // cobra requires package-level flag registration via init
func init() {
	ServeCmd.Flags().IntVar(&flags.port, "port", defaultPort, "Probe server port (0 for an OS-assigned ephemeral port)")
	ServeCmd.Flags().DurationVar(&flags.timeout, "timeout", defaultTimeout, "Absolute upper bound on the shutdown sequence")
	ServeCmd.Flags().DurationVar(&flags.gracePeriod, "grace-period", defaultGracePeriod, "Delay between shutdown being requested and the state flipping to SHUTTING_DOWN")
	ServeCmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Log format (text|json)")
	ServeCmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	ServeCmd.PreRun = bindServeFlagsFunc(ServeCmd.Flags())
}

func runServe(_ *cobra.Command, _ []string) error {
	config, err := cfg.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("serve: loading configuration: %w", err)
	}

	log, err := logger.NewLogger(
		logger.WithFormat(config.Log.Format),
		logger.WithLevel(config.Log.Level),
	)
	if err != nil {
		return fmt.Errorf("serve: building logger: %w", err)
	}

	terminated := make(chan struct{})
	lc, err := lifecycle.New(
		lifecycle.WithPort(config.Port),
		lifecycle.WithTimeout(config.Timeout),
		lifecycle.WithGracePeriod(config.GracePeriod),
		lifecycle.WithLogger(log),
		lifecycle.WithTerminate(func() { close(terminated) }),
	)
	if err != nil {
		return fmt.Errorf("serve: starting lifecycle: %w", err)
	}

	log.Info("probe server listening", zap.String("addr", lc.Addr()))

	mux := newDemoServer(lc, log)
	httpServer := &http.Server{
		Addr:              ":8080",
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.RegisterShutdownHandler(func(ctx context.Context) error {
		log.Info("draining demo HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("demo HTTP server stopped unexpectedly", zap.Error(err))
		}
	}()

	signals.Notify(lc, log)
	lc.SignalReady()

	// Block until a signal has driven the shutdown sequence to terminate.
	<-terminated
	return nil
}

// newDemoServer wires a single "/work" endpoint that creates a beacon for
// the duration of each request: in-flight requests hold off shutdown
// handlers exactly the way the spec's beacon mechanism is meant to be
// used by application code, layered on top of (never inside) the
// library.
func newDemoServer(lc *lifecycle.Lifecycle, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/work", func(w http.ResponseWriter, _ *http.Request) {
		requestID := uuid.New().String()
		beacon, err := lc.CreateBeacon(requestID)
		if err != nil {
			log.Warn("rejecting request during shutdown", zap.String("requestId", requestID), zap.Error(err))
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
			return
		}
		defer func() {
			if err := beacon.Die(); err != nil {
				log.Error("failed to retire beacon", zap.String("requestId", requestID), zap.Error(err))
			}
		}()

		time.Sleep(50 * time.Millisecond)
		fmt.Fprintf(w, "ok: %s\n", requestID)
	})
	return mux
}
