// Command report runs one load cycle and writes the report artifacts: KPI
// and quality findings to stdout, the low-stock table to CSV and XLSX files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"retailcli/internal/analytics"
	"retailcli/internal/config"
	"retailcli/internal/dataset"
	"retailcli/internal/exporter"
	"retailcli/internal/infrastructure"
	"retailcli/internal/quality"
	"retailcli/internal/services"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	dataDir := flag.String("data", "", "override data directory holding the source tables")
	outDir := flag.String("out", "", "override output directory for report files")
	threshold := flag.Float64("threshold", 0, "low-stock threshold override (0 uses configured default)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}
	if *threshold > 0 {
		cfg.Engine.LowStockThreshold = *threshold
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)

	loader := dataset.NewLoader(
		dataset.NewFileSource("customers", cfg.Paths.CustomersPath(), "customers"),
		dataset.NewFileSource("inventory", cfg.Paths.InventoryPath(), "inventory"),
		dataset.NewFileSource("sales", cfg.Paths.SalesPath(), "sales"),
		logger)
	service := services.NewReportService(loader, cfg.Engine, logger)

	ctx := context.Background()
	if err := run(ctx, cfg, service, logger); err != nil {
		logger.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, service *services.ReportService, logger *slog.Logger) error {
	snap, err := service.Snapshot(ctx)
	if err != nil {
		return err
	}

	dashboard, err := service.Dashboard(ctx, services.Filter{})
	if err != nil {
		return err
	}

	findings := struct {
		Summary         analytics.Summary        `json:"summary"`
		Trend           []analytics.TrendPoint   `json:"trend"`
		TopCustomers    analytics.TopReport      `json:"top_customers"`
		TopProducts     analytics.TopReport      `json:"top_products"`
		RowCounts       quality.RowCounts        `json:"row_counts"`
		OrphanedSales   quality.OrphanReport     `json:"orphaned_sales"`
		NegativeAmounts []quality.NegativeAmount `json:"negative_amounts"`
	}{
		Summary:         dashboard.Summary,
		Trend:           dashboard.Trend,
		TopCustomers:    dashboard.TopCustomers,
		TopProducts:     dashboard.TopProducts,
		RowCounts:       quality.CountRows(snap),
		OrphanedSales:   quality.OrphanedSales(snap),
		NegativeAmounts: quality.NegativeAmounts(snap),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(findings); err != nil {
		return fmt.Errorf("encode findings: %w", err)
	}

	lowStock := analytics.LowStock(snap.Inventory, cfg.Engine.LowStockThreshold)
	csvPath := cfg.Paths.ReportPath("low_stock.csv")
	if err := exporter.NewCSVWriter(logger).WriteFile(csvPath, lowStock); err != nil {
		return err
	}
	xlsxPath := cfg.Paths.ReportPath("low_stock.xlsx")
	if err := exporter.NewXLSXWriter(logger).WriteFile(xlsxPath, "Low Stock", lowStock); err != nil {
		return err
	}

	logger.Info("report written",
		slog.String("csv", csvPath),
		slog.String("xlsx", xlsxPath),
		slog.Int("low_stock_rows", lowStock.RowCount()))
	return nil
}
