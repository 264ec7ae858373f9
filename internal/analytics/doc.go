// Package analytics computes the aggregate metrics behind the retail
// dashboard: KPI scalars, the monthly revenue trend with its moving average,
// top-N rankings by revenue, the low-stock report, and the pre-filters
// (date range, category) applied before aggregation.
//
// Every function is a pure, read-only computation over normalized dataset
// tables and is safe to run concurrently against the same snapshot.
package analytics
