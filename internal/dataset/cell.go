package dataset

import (
	"strconv"
	"time"
)

// CellKind identifies the variant stored in a Cell.
type CellKind int

const (
	// KindString is raw loader output, not yet coerced.
	KindString CellKind = iota
	// KindNumber is a coerced numeric value.
	KindNumber
	// KindTime is a coerced timestamp.
	KindTime
	// KindMissing marks a date that failed to parse or a null source value.
	KindMissing
)

// Cell is a tagged variant holding one table value. Loaders produce string
// cells; the normalizer rewrites coerced columns to Number, Time or Missing.
// The zero value is an empty string cell.
type Cell struct {
	kind CellKind
	str  string
	num  float64
	ts   time.Time
}

// StringCell creates a raw string cell.
func StringCell(s string) Cell {
	return Cell{kind: KindString, str: s}
}

// NumberCell creates a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// TimeCell creates a timestamp cell.
func TimeCell(t time.Time) Cell {
	return Cell{kind: KindTime, ts: t}
}

// MissingCell creates the explicit missing marker.
func MissingCell() Cell {
	return Cell{kind: KindMissing}
}

// Kind returns the variant tag.
func (c Cell) Kind() CellKind {
	return c.kind
}

// Number returns the numeric value. The second result is false unless the
// cell has been coerced to a number.
func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// Time returns the timestamp value. The second result is false for string,
// numeric and missing cells.
func (c Cell) Time() (time.Time, bool) {
	return c.ts, c.kind == KindTime
}

// Missing reports whether the cell carries the missing marker.
func (c Cell) Missing() bool {
	return c.kind == KindMissing
}

// String renders the cell for display and export. Numbers use the shortest
// exact decimal form, timestamps use the date-only layout the source files
// carry, and missing cells render empty.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindTime:
		return c.ts.Format("2006-01-02")
	case KindMissing:
		return ""
	default:
		return c.str
	}
}
