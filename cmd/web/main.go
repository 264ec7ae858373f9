// Command web serves the retail report engine as a JSON API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"retailcli/internal/config"
	"retailcli/internal/dataset"
	"retailcli/internal/infrastructure"
	"retailcli/internal/services"
	transport "retailcli/internal/transport/http"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	logger.Info("starting retail report server",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("data_dir", cfg.Paths.DataDir))

	loader := dataset.NewLoader(
		dataset.NewFileSource("customers", cfg.Paths.CustomersPath(), "customers"),
		dataset.NewFileSource("inventory", cfg.Paths.InventoryPath(), "inventory"),
		dataset.NewFileSource("sales", cfg.Paths.SalesPath(), "sales"),
		logger)
	service := services.NewReportService(loader, cfg.Engine, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      transport.NewRouter(cfg, service, logger, Version),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("server stopped")
}
