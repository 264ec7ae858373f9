// Package http exposes the report engine over a chi-based JSON API: the
// dashboard payload, individual aggregations, the low-stock download in CSV
// or XLSX form, the on-demand quality checks, snapshot reload, health and
// metrics. Filter query parameters (from, to, category, threshold, limit)
// are validated here and interpreted nowhere deeper than the documented
// inclusive-range / exact-match / "All" sentinel contract.
package http
