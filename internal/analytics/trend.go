package analytics

import (
	"sort"
	"time"

	"retailcli/internal/dataset"
)

// TrendPoint is one calendar-month revenue bucket together with its trailing
// 3-month moving average.
type TrendPoint struct {
	Month     time.Time `json:"month"`
	Revenue   float64   `json:"revenue"`
	MovingAvg float64   `json:"moving_avg"`
}

// MonthlyTrend buckets sales revenue by calendar month, ascending, and
// overlays a 3-point trailing moving average. Only rows with a present
// sale_date participate; rows whose date failed to parse are excluded, not
// errors. Empty sales, a missing sale_date column, or no parseable dates all
// yield an empty sequence.
//
// The moving average at the head of the series uses however many buckets
// exist, so the first point averages one value and the second two.
func MonthlyTrend(sales *dataset.Table) []TrendPoint {
	dateCol, ok := sales.Lookup(dataset.ColSaleDate)
	if !ok {
		return nil
	}
	amountCol, hasAmount := sales.Lookup(dataset.ColTotalAmount)

	buckets := make(map[time.Time]float64)
	for row := 0; row < sales.RowCount(); row++ {
		ts, ok := sales.Cell(row, dateCol).Time()
		if !ok {
			continue
		}
		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		var amount float64
		if hasAmount {
			amount, _ = sales.Cell(row, amountCol).Number()
		}
		buckets[month] += amount
	}
	if len(buckets) == 0 {
		return nil
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]TrendPoint, len(months))
	for i, m := range months {
		points[i] = TrendPoint{Month: m, Revenue: buckets[m]}

		start := i - 2
		if start < 0 {
			start = 0
		}
		var window float64
		for j := start; j <= i; j++ {
			window += buckets[months[j]]
		}
		points[i].MovingAvg = window / float64(i-start+1)
	}
	return points
}
