// Package api serves the catalog as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/store"
)

// Server wires the catalog handlers onto an echo instance.
type Server struct {
	echo   *echo.Echo
	store  *store.Store
	now    func() time.Time
	logger zerolog.Logger
}

// Option customises a Server.
type Option func(*Server)

// WithClock overrides the clock used for "time ago" fields.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates the API server for s.
func New(s *store.Store, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:   e,
		store:  s,
		now:    time.Now,
		logger: config.GetLogger().With().Str("component", "api").Logger(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := srv.logger.Debug()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = srv.logger.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("requestID", v.RequestID).
				Msg("Request handled")
			return nil
		},
	}))

	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.health)

	g := s.echo.Group("/api")
	g.GET("/shows", s.listShows)
	g.GET("/shows/:id", s.getShow)
	g.GET("/genres", s.listGenres)
	g.POST("/refresh", s.refresh)
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on address:port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, address string, port int) error {
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf("%s:%d", address, port)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", addr).Msg("Starting HTTP API")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info().Msg("Shutting down HTTP API")
	return s.echo.Shutdown(shutdownCtx)
}
