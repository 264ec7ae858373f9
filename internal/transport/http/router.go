package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retailcli/internal/config"
	apierrors "retailcli/internal/errors"
	"retailcli/internal/middleware"
	"retailcli/internal/services"
)

// NewRouter assembles the full HTTP surface: middleware chain, report API
// under /api, health and metrics endpoints.
func NewRouter(cfg *config.Config, service *services.ReportService, logger *slog.Logger, version string) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	errorHandler := apierrors.NewErrorHandler(logger)
	reportHandler := NewReportHandler(service, logger, errorHandler)
	healthHandler := NewHealthHandler(version)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(metrics.Handler)
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst))
	}

	r.Mount("/api", reportHandler.Routes())
	r.Get("/healthz", healthHandler.Get)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return r
}
