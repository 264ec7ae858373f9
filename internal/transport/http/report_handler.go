package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"retailcli/internal/analytics"
	"retailcli/internal/dataset"
	apierrors "retailcli/internal/errors"
	"retailcli/internal/exporter"
	"retailcli/internal/quality"
	"retailcli/internal/services"
)

// ReportServiceInterface is the service surface the handler depends on.
type ReportServiceInterface interface {
	Snapshot(ctx context.Context) (*dataset.Snapshot, error)
	Reload(ctx context.Context) (*dataset.Snapshot, error)
	Dashboard(ctx context.Context, f services.Filter) (*services.Dashboard, error)
	Summary(ctx context.Context, f services.Filter) (analytics.Summary, error)
	Trend(ctx context.Context, f services.Filter) ([]analytics.TrendPoint, error)
	TopCustomers(ctx context.Context, f services.Filter, n int) (analytics.TopReport, error)
	TopProducts(ctx context.Context, f services.Filter, n int) (analytics.TopReport, error)
	LowStock(ctx context.Context, category string, threshold *float64) (*dataset.Table, error)
	FilterOptions(ctx context.Context) (services.FilterOptions, error)
	RowCounts(ctx context.Context) (quality.RowCounts, error)
	OrphanedSales(ctx context.Context) (quality.OrphanReport, error)
	NegativeAmounts(ctx context.Context) ([]quality.NegativeAmount, error)
}

// reportQuery models the filter query parameters for validation.
type reportQuery struct {
	From      string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Category  string `json:"category"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Threshold string `json:"threshold"`
}

// ReportHandler serves the report engine's API.
type ReportHandler struct {
	service      ReportServiceInterface
	csv          *exporter.CSVWriter
	xlsx         *exporter.XLSXWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewReportHandler creates a report handler.
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		csv:          exporter.NewCSVWriter(logger),
		xlsx:         exporter.NewXLSXWriter(logger),
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.GetDashboard)
	r.Get("/summary", h.GetSummary)
	r.Get("/trend", h.GetTrend)
	r.Get("/top/customers", h.GetTopCustomers)
	r.Get("/top/products", h.GetTopProducts)
	r.Get("/lowstock", h.GetLowStock)
	r.Get("/lowstock/download", h.DownloadLowStock)
	r.Get("/filters", h.GetFilterOptions)
	r.Post("/reload", h.Reload)

	// Quality checks are separately triggerable, never part of the
	// dashboard computation.
	r.Route("/quality", func(r chi.Router) {
		r.Get("/row-counts", h.GetRowCounts)
		r.Get("/orphaned-sales", h.GetOrphanedSales)
		r.Get("/negative-amounts", h.GetNegativeAmounts)
	})
	return r
}

// parseQuery validates the filter query parameters and converts them to a
// service filter. The "to" bound covers the whole named day so date-only
// bounds stay inclusive for timestamped sales.
func (h *ReportHandler) parseQuery(r *http.Request) (reportQuery, services.Filter, *apierrors.APIError) {
	q := reportQuery{
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
		Category:  r.URL.Query().Get("category"),
		Threshold: r.URL.Query().Get("threshold"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, services.Filter{}, apierrors.ErrValidation("limit", "limit must be an integer")
		}
		q.Limit = n
	}
	if err := h.validate.Struct(q); err != nil {
		return q, services.Filter{}, apierrors.ErrValidation("query", err.Error())
	}

	f := services.Filter{Category: q.Category}
	if q.From != "" {
		from, _ := time.ParseInLocation("2006-01-02", q.From, time.UTC)
		f.From = &from
	}
	if q.To != "" {
		to, _ := time.ParseInLocation("2006-01-02", q.To, time.UTC)
		to = to.Add(24*time.Hour - time.Nanosecond)
		f.To = &to
	}
	return q, f, nil
}

func (h *ReportHandler) parseThreshold(q reportQuery) (*float64, *apierrors.APIError) {
	if q.Threshold == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(q.Threshold, 64)
	if err != nil || v < 0 {
		return nil, apierrors.ErrValidation("threshold", "threshold must be a non-negative number")
	}
	return &v, nil
}

func (h *ReportHandler) loadError(err error) *apierrors.APIError {
	return &apierrors.APIError{
		StatusCode: http.StatusServiceUnavailable,
		ErrorCode:  "LOAD_FAILED",
		Message:    fmt.Sprintf("source data could not be loaded: %v", err),
	}
}

// GetDashboard returns the full report payload under the given filters.
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	_, f, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	dashboard, err := h.service.Dashboard(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, dashboard)
}

// GetSummary returns the four KPI scalars.
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	_, f, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	summary, err := h.service.Summary(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, summary)
}

// GetTrend returns the monthly revenue series with moving average.
func (h *ReportHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	_, f, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	trend, err := h.service.Trend(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	if trend == nil {
		trend = []analytics.TrendPoint{}
	}
	render.JSON(w, r, trend)
}

// GetTopCustomers returns the customer ranking.
func (h *ReportHandler) GetTopCustomers(w http.ResponseWriter, r *http.Request) {
	q, f, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	report, err := h.service.TopCustomers(r.Context(), f, q.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, report)
}

// GetTopProducts returns the product ranking.
func (h *ReportHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	q, f, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	report, err := h.service.TopProducts(r.Context(), f, q.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, report)
}

// GetLowStock returns the low-stock inventory table.
func (h *ReportHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	q, _, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	threshold, apiErr := h.parseThreshold(q)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	table, err := h.service.LowStock(r.Context(), q.Category, threshold)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, services.NewTableResult(table))
}

// DownloadLowStock streams the low-stock table as a CSV or XLSX attachment.
func (h *ReportHandler) DownloadLowStock(w http.ResponseWriter, r *http.Request) {
	q, _, apiErr := h.parseQuery(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	threshold, apiErr := h.parseThreshold(q)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	table, err := h.service.LowStock(r.Context(), q.Category, threshold)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="low_stock.csv"`)
		err = h.csv.Write(w, table, exporter.WriteOptions{BOMPrefix: true})
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="low_stock.xlsx"`)
		err = h.xlsx.Write(w, "Low Stock", table)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "format must be csv or xlsx"))
		return
	}
	if err != nil {
		// Headers are already sent; log and give up on the body.
		h.logger.ErrorContext(r.Context(), "download failed",
			slog.String("format", format),
			slog.String("error", err.Error()))
	}
}

// GetFilterOptions returns categories and the sale-date span for the filter
// widgets.
func (h *ReportHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, opts)
}

// Reload drops the snapshot cache and loads fresh from the sources.
func (h *ReportHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, map[string]any{
		"status":    "reloaded",
		"loaded_at": snap.LoadedAt,
	})
}

// GetRowCounts runs the row-count quality check.
func (h *ReportHandler) GetRowCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.RowCounts(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, counts)
}

// GetOrphanedSales runs the referential-integrity quality check.
func (h *ReportHandler) GetOrphanedSales(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.OrphanedSales(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, report)
}

// GetNegativeAmounts runs the value-domain quality check.
func (h *ReportHandler) GetNegativeAmounts(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.NegativeAmounts(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.loadError(err))
		return
	}
	render.JSON(w, r, found)
}
