// Package api assembles the watch-mode HTTP surface: probes, Prometheus
// metrics, and the Huma-documented summary API on top of Echo.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/auction-monitor/internal/api/handlers"
	mw "github.com/donaldgifford/auction-monitor/internal/api/middleware"
	"github.com/donaldgifford/auction-monitor/internal/config"
)

// Monitor is what the API needs from the auction monitor.
type Monitor interface {
	handlers.SummarySource
	handlers.Runner
}

// Server serves the watch-mode API.
type Server struct {
	echo *echo.Echo
	http *http.Server
	log  *slog.Logger
}

// NewServer wires routes and middleware for mon.
func NewServer(cfg config.ServerConfig, mon Monitor, log *slog.Logger, version string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.RequestLog(log))
	e.Use(mw.Recovery(log))
	e.Use(mw.Metrics())

	health := handlers.NewHealthHandler(mon)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaAPI := humaecho.New(e, huma.DefaultConfig("Auction Monitor API", version))
	handlers.RegisterSummaryRoutes(humaAPI, handlers.NewSummaryHandler(mon))
	handlers.RegisterRunRoutes(humaAPI, handlers.NewRunHandler(mon))

	return &Server{
		echo: e,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      e,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.log.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
