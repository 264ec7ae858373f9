package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Canonical column names consumed by the engine. Extra columns in a source
// are preserved untouched.
const (
	ColCustomerID      = "customer_id"
	ColCustomerName    = "customer_name"
	ColJoinDate        = "join_date"
	ColProductID       = "product_id"
	ColProductName     = "product_name"
	ColCategory        = "category"
	ColPricePerUnit    = "price_per_unit"
	ColQuantityInStock = "quantity_in_stock"
	ColSaleID          = "sale_id"
	ColSaleDate        = "sale_date"
	ColTotalAmount     = "total_amount"
	ColQuantity        = "quantity"
)

// CoerceKind selects the target type of a coerced column.
type CoerceKind int

const (
	// CoerceNumber parses cells as floats; failures become 0.
	CoerceNumber CoerceKind = iota
	// CoerceTime parses cells as timestamps; failures become Missing.
	CoerceTime
)

// Rule binds one column to its coercion target. Rules for columns that are
// not present in a table are skipped, not errors: the dependent feature
// simply degrades downstream.
type Rule struct {
	Column string
	Kind   CoerceKind
}

// Per-table coercion policies, mirroring the dashboard's source schema.
var (
	CustomerRules = []Rule{
		{Column: ColJoinDate, Kind: CoerceTime},
	}
	InventoryRules = []Rule{
		{Column: ColPricePerUnit, Kind: CoerceNumber},
		{Column: ColQuantityInStock, Kind: CoerceNumber},
	}
	SalesRules = []Rule{
		{Column: ColSaleDate, Kind: CoerceTime},
		{Column: ColTotalAmount, Kind: CoerceNumber},
		{Column: ColQuantity, Kind: CoerceNumber},
	}
)

// Date layouts accepted by the normalizer, tried in order. Hand-authored CSV
// exports are inconsistent about separators and time-of-day.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02-01-2006",
}

// Normalize produces a normalized copy of a table: column names are trimmed
// of leading and trailing whitespace and the given coercion rules applied.
// The pass is idempotent; normalizing an already normalized table returns an
// equal table. The input is never modified.
func Normalize(t *Table, rules []Rule) *Table {
	columns := make([]string, len(t.columns))
	for i, c := range t.columns {
		columns[i] = strings.TrimSpace(c)
	}

	records := make([][]Cell, len(t.records))
	for i, rec := range t.records {
		row := make([]Cell, len(rec))
		copy(row, rec)
		records[i] = row
	}
	out := &Table{columns: columns, records: records}

	for _, rule := range rules {
		col, ok := out.Lookup(rule.Column)
		if !ok {
			continue
		}
		for _, rec := range out.records {
			rec[col] = coerce(rec[col], rule.Kind)
		}
	}
	return out
}

// coerce rewrites a raw string cell to the rule's target type. Cells that
// already carry a typed value pass through unchanged, which is what makes
// the normalization pass idempotent.
func coerce(c Cell, kind CoerceKind) Cell {
	if c.Kind() != KindString {
		return c
	}
	switch kind {
	case CoerceTime:
		if ts, ok := parseTime(c.str); ok {
			return TimeCell(ts)
		}
		return MissingCell()
	default:
		return NumberCell(parseNumber(c.str))
	}
}

// parseNumber reads a float out of a cell, tolerating thousands separators
// and surrounding whitespace. Anything unparseable coerces to zero; this is
// lossy-but-safe normalization, not validation.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseTime tries the accepted layouts in order. Timestamps are anchored in
// UTC so month bucketing is stable across host timezones.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
