// Package server assembles the HTTP server: middleware chain, API and
// frontend routes, and the background roster refresh runner.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/presence-analyzer/internal/profile"
	"github.com/hrygo/presence-analyzer/server/internal/observability"
	"github.com/hrygo/presence-analyzer/server/middleware"
	apiv1 "github.com/hrygo/presence-analyzer/server/router/api/v1"
	"github.com/hrygo/presence-analyzer/server/router/frontend"
	"github.com/hrygo/presence-analyzer/server/runner/roster"
	"github.com/hrygo/presence-analyzer/store"
)

// Server holds the echo instance and everything wired into it.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echo         *echo.Echo
	metrics      *observability.Metrics
	rosterRunner *roster.Runner
}

// NewServer wires middlewares, routes and background runners into a ready
// to start server.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Profile: profile,
		Store:   store,
		echo:    e,
		metrics: observability.NewMetrics(1000),
	}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	e.Use(middleware.RequestLogger(slog.Default(), s.metrics))
	e.Use(middleware.NewRateLimiter(defaultRateLimit, defaultRateBurst).Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiService := apiv1.NewAPIV1Service(profile, store, s.metrics)
	apiService.RegisterRoutes(e)

	frontendService, err := frontend.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create frontend service")
	}
	frontendService.RegisterRoutes(e)

	s.rosterRunner = roster.NewRunner(profile, store)

	return s, nil
}

const (
	defaultRateLimit = 30
	defaultRateBurst = 60
)

// Start launches the roster runner and the HTTP listener. It blocks until
// the listener stops.
func (s *Server) Start(ctx context.Context) error {
	if s.Profile.RosterRefreshEnabled() {
		go func() {
			if err := s.rosterRunner.Run(ctx); err != nil {
				slog.Error("roster runner stopped", "error", err)
			}
		}()
	}

	slog.Info("server started",
		"address", s.Profile.Addr,
		"port", s.Profile.Port,
		"mode", s.Profile.Mode)
	return s.echo.Start(fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port))
}

// Shutdown gracefully stops the HTTP listener and releases the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	s.Store.Close()
	slog.Info("server shutdown complete")
}

// Echo exposes the underlying echo instance, used by tests to drive
// requests without a network listener.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
