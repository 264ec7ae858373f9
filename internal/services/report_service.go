// Package services wires the loader and the computation engine into the
// report operations consumed by the transport layer and the CLI.
package services

import (
	"context"
	"log/slog"
	"time"

	"retailcli/internal/analytics"
	"retailcli/internal/config"
	"retailcli/internal/dataset"
	"retailcli/internal/quality"
)

// Filter carries the presentation-layer pre-filter parameters: an inclusive
// sale-date range and an exact-match product category. Zero values mean "no
// restriction"; the category sentinel "All" does too.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

// FilterOptions describes the values the presentation layer can offer in its
// filter widgets: the distinct categories and the sale-date span.
type FilterOptions struct {
	Categories []string   `json:"categories"`
	MinDate    *time.Time `json:"min_date"`
	MaxDate    *time.Time `json:"max_date"`
}

// TableResult is the JSON shape of a result table: the column schema plus
// display-rendered rows.
type TableResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTableResult renders a table for the API.
func NewTableResult(t *dataset.Table) TableResult {
	return TableResult{Columns: t.Columns(), Rows: t.Strings()}
}

// Dashboard is the full report payload: KPIs, trend, rankings and the
// low-stock table, all computed over one filtered snapshot view.
type Dashboard struct {
	Summary      analytics.Summary      `json:"summary"`
	Trend        []analytics.TrendPoint `json:"trend"`
	TopCustomers analytics.TopReport    `json:"top_customers"`
	TopProducts  analytics.TopReport    `json:"top_products"`
	LowStock     TableResult            `json:"low_stock"`
	LoadedAt     time.Time              `json:"loaded_at"`
}

// ReportService orchestrates snapshot access and the aggregation, quality
// and low-stock operations. All computation is a pure function of the
// current snapshot; concurrent requests share snapshots safely because
// tables are immutable.
type ReportService struct {
	loader *dataset.Loader
	engine config.EngineConfig
	logger *slog.Logger
}

// NewReportService creates a report service.
func NewReportService(loader *dataset.Loader, engine config.EngineConfig, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		loader: loader,
		engine: engine,
		logger: logger.With(slog.String("component", "report_service")),
	}
}

// Snapshot returns the current normalized tables, reloading from the
// sources only when their signatures changed.
func (s *ReportService) Snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	return s.loader.Load(ctx)
}

// Reload drops the cached snapshot and loads fresh.
func (s *ReportService) Reload(ctx context.Context) (*dataset.Snapshot, error) {
	s.loader.Invalidate()
	return s.loader.Load(ctx)
}

// view applies the pre-filters to a snapshot: category narrows inventory and,
// through product membership, sales; the date range narrows sales. The
// customers table is never filtered.
func view(snap *dataset.Snapshot, f Filter) *dataset.Snapshot {
	inventory := analytics.FilterInventoryByCategory(snap.Inventory, f.Category)
	sales := snap.Sales
	if inventory != snap.Inventory {
		sales = analytics.FilterSalesByProducts(sales, inventory)
	}
	sales = analytics.FilterSalesByDate(sales, f.From, f.To)
	return &dataset.Snapshot{
		Customers: snap.Customers,
		Inventory: inventory,
		Sales:     sales,
		LoadedAt:  snap.LoadedAt,
	}
}

// Dashboard computes the full report payload for one filter combination.
func (s *ReportService) Dashboard(ctx context.Context, f Filter) (*Dashboard, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	v := view(snap, f)
	return &Dashboard{
		Summary:      analytics.Summarize(v),
		Trend:        analytics.MonthlyTrend(v.Sales),
		TopCustomers: analytics.TopCustomers(v, s.engine.TopN),
		TopProducts:  analytics.TopProducts(v, s.engine.TopN),
		LowStock:     NewTableResult(analytics.LowStock(v.Inventory, s.engine.LowStockThreshold)),
		LoadedAt:     snap.LoadedAt,
	}, nil
}

// Summary computes the KPI scalars under the given filter.
func (s *ReportService) Summary(ctx context.Context, f Filter) (analytics.Summary, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(view(snap, f)), nil
}

// Trend computes the monthly revenue series under the given filter.
func (s *ReportService) Trend(ctx context.Context, f Filter) ([]analytics.TrendPoint, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyTrend(view(snap, f).Sales), nil
}

// TopCustomers ranks customers by revenue under the given filter. n falls
// back to the configured default when not positive.
func (s *ReportService) TopCustomers(ctx context.Context, f Filter, n int) (analytics.TopReport, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return analytics.TopReport{}, err
	}
	return analytics.TopCustomers(view(snap, f), s.topN(n)), nil
}

// TopProducts ranks products by revenue under the given filter.
func (s *ReportService) TopProducts(ctx context.Context, f Filter, n int) (analytics.TopReport, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return analytics.TopReport{}, err
	}
	return analytics.TopProducts(view(snap, f), s.topN(n)), nil
}

// LowStock returns the low-stock inventory rows. A nil threshold uses the
// configured default; the category filter applies before thresholding.
func (s *ReportService) LowStock(ctx context.Context, category string, threshold *float64) (*dataset.Table, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.engine.LowStockThreshold
	if threshold != nil {
		cutoff = *threshold
	}
	inventory := analytics.FilterInventoryByCategory(snap.Inventory, category)
	return analytics.LowStock(inventory, cutoff), nil
}

// FilterOptions lists the category and date-range values available to the
// presentation layer's filter widgets.
func (s *ReportService) FilterOptions(ctx context.Context) (FilterOptions, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	opts := FilterOptions{Categories: analytics.Categories(snap.Inventory)}
	if min, max, ok := analytics.SaleDateBounds(snap.Sales); ok {
		opts.MinDate, opts.MaxDate = &min, &max
	}
	return opts, nil
}

// RowCounts runs the row-count quality check on the unfiltered snapshot.
func (s *ReportService) RowCounts(ctx context.Context) (quality.RowCounts, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return quality.RowCounts{}, err
	}
	return quality.CountRows(snap), nil
}

// OrphanedSales runs the referential-integrity check on the unfiltered
// snapshot.
func (s *ReportService) OrphanedSales(ctx context.Context) (quality.OrphanReport, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return quality.OrphanReport{}, err
	}
	return quality.OrphanedSales(snap), nil
}

// NegativeAmounts runs the value-domain check on the unfiltered snapshot.
func (s *ReportService) NegativeAmounts(ctx context.Context) ([]quality.NegativeAmount, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return quality.NegativeAmounts(snap), nil
}

func (s *ReportService) topN(n int) int {
	if n > 0 {
		return n
	}
	return s.engine.TopN
}
