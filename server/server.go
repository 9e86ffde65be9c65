// Package server hosts the local relay the web page talks to. It forwards
// API traffic upstream, substitutes mock payloads when the upstream cannot
// answer, and streams notification events to connected pages.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/collegecounselor/counselor/notify"
	"github.com/collegecounselor/counselor/resilience"
)

// Config holds the relay server settings.
type Config struct {
	Listen      string
	UpstreamURL string
	Timeout     time.Duration
}

// Server is the relay HTTP server.
type Server struct {
	echo       *echo.Echo
	cfg        Config
	httpClient *http.Client
	dispatcher *notify.Dispatcher
	logger     zerolog.Logger
}

// New builds the relay server. The crash guard doubles as the recovery
// middleware so a handler bug degrades to a logged warning instead of
// killing the process.
func New(cfg Config, dispatcher *notify.Dispatcher, guard *resilience.Guard, logger zerolog.Logger) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(guard.Middleware())

	s := &Server{
		echo:       e,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		dispatcher: dispatcher,
		logger:     logger,
	}

	// The wildcard keeps endpoint keys with slashes (journal/entries)
	// addressable.
	e.Any("/api-proxy/*", s.handleRelay)
	e.GET("/ws/notifications", s.handleNotifications)
	e.GET("/healthz", s.handleHealth)

	return s
}

// Start serves until ctx is cancelled, then drains connections.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info().Str("listen", s.cfg.Listen).Msg("relay server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}
