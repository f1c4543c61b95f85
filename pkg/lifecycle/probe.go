package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Kikobeats/lightship/pkg/logger"
)

// probeDrainTimeout bounds how long Close waits for keep-alive sockets to
// drain before giving up.
const probeDrainTimeout = 5 * time.Second

// ProbeServer answers the three orchestrator-facing HTTP paths. Its
// responses are pure functions of the shared state cell -- it only reads
// that cell and holds no lifecycle state of its own.
type ProbeServer struct {
	echo     *echo.Echo
	listener net.Listener
	state    *stateMachine
	log      logger.Logger
}

func newProbeServer(state *stateMachine, log logger.Logger, addr string) (*ProbeServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: binding probe server: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	p := &ProbeServer{echo: e, listener: ln, state: state, log: log}

	e.GET("/health", p.handleHealth)
	e.GET("/live", p.handleLive)
	e.GET("/ready", p.handleReady)

	go func() {
		if err := e.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("probe server stopped unexpectedly", zap.Error(err))
		}
	}()

	return p, nil
}

// Addr returns the bound listener address, e.g. "[::]:9000" or, when
// configured with port 0, the ephemeral port the OS assigned.
func (p *ProbeServer) Addr() string {
	return p.listener.Addr().String()
}

// Close drains in-flight probe requests and stops listening. It is the
// penultimate step of the shutdown sequence, run before terminate.
func (p *ProbeServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), probeDrainTimeout)
	defer cancel()
	return p.echo.Shutdown(ctx)
}

func (p *ProbeServer) handleHealth(c echo.Context) error {
	s := p.state.raw()
	if s == StateReady {
		return c.String(http.StatusOK, s.String())
	}
	return c.String(http.StatusInternalServerError, s.String())
}

func (p *ProbeServer) handleLive(c echo.Context) error {
	if p.state.raw() == StateShuttingDown {
		return c.String(http.StatusInternalServerError, StateShuttingDown.String())
	}
	return c.String(http.StatusOK, "SERVER_IS_NOT_SHUTTING_DOWN")
}

// handleReady deliberately keeps reporting 200/SERVER_IS_READY while the
// process is draining (StateShuttingDown). Rewriting /ready to fail the
// moment shutdown starts races with the orchestrator's proxy layer still
// routing to this pod for a few seconds; health carries the "not healthy"
// signal instead.
func (p *ProbeServer) handleReady(c echo.Context) error {
	if p.state.raw() == StateNotReady {
		return c.String(http.StatusInternalServerError, StateNotReady.String())
	}
	return c.String(http.StatusOK, StateReady.String())
}
