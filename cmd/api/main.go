// Command api serves the TravelVista catalog, planner sessions and hero
// animation over HTTP. It only wires packages together.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/travelvista/internal/config"
	"github.com/pkordes/travelvista/internal/handler"
	"github.com/pkordes/travelvista/internal/middleware"
	"github.com/pkordes/travelvista/internal/observability"
	"github.com/pkordes/travelvista/internal/repo"
	"github.com/pkordes/travelvista/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The default text logger still writes to stderr here.
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Observability.
	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		slog.Error("failed to initialise tracing", "error", err)
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewCollector(registry)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// The catalog is fetched once in the background. Until it returns the
	// page reports loading; a failed fetch leaves it empty for the life of
	// the process.
	destinations, closeRepo, err := repo.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open catalog source", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	catalog := service.NewCatalogService(destinations, logger, metrics)
	go func() { _, _ = catalog.Load(ctx) }()
	planner := service.NewPlannerService(catalog, logger, metrics)

	// Metrics sees the status written by Recoverer, and CORS answers
	// preflights before the body limit applies.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", metrics.Handler())
	server := handler.NewServer(catalog, planner,
		handler.WithLogger(logger),
		handler.WithFrameRecorder(metrics),
	)
	server.Register(r)

	// Hero streams clear their own write deadline; everything else is bound
	// by WriteTimeout.
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr, "catalog_source", cfg.CatalogSource)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown requested")

	// Give in-flight requests up to 15 seconds to complete. Open hero
	// streams see the base context cancelled and return on their own.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return
	}
	slog.Info("shutdown complete")
}
