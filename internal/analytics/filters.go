package analytics

import (
	"time"

	"retailcli/internal/dataset"
)

// AllCategories is the sentinel meaning "no category restriction". An empty
// category is treated the same way.
const AllCategories = "All"

// FilterSalesByDate restricts sales to rows whose sale_date falls inside the
// inclusive [from, to] range. A nil bound leaves that side open; both nil
// returns the input unchanged. Rows with a missing sale_date never satisfy a
// bound and are excluded while a filter is active.
func FilterSalesByDate(sales *dataset.Table, from, to *time.Time) *dataset.Table {
	if from == nil && to == nil {
		return sales
	}
	dateCol, ok := sales.Lookup(dataset.ColSaleDate)
	if !ok {
		return sales.Select(nil)
	}

	var rows []int
	for row := 0; row < sales.RowCount(); row++ {
		ts, ok := sales.Cell(row, dateCol).Time()
		if !ok {
			continue
		}
		if from != nil && ts.Before(*from) {
			continue
		}
		if to != nil && ts.After(*to) {
			continue
		}
		rows = append(rows, row)
	}
	return sales.Select(rows)
}

// FilterInventoryByCategory restricts inventory to an exact category match.
// The "All" sentinel (or empty string) disables the filter, as does a table
// without a category column.
func FilterInventoryByCategory(inventory *dataset.Table, category string) *dataset.Table {
	if category == "" || category == AllCategories {
		return inventory
	}
	catCol, ok := inventory.Lookup(dataset.ColCategory)
	if !ok {
		return inventory
	}

	var rows []int
	for row := 0; row < inventory.RowCount(); row++ {
		if inventory.Cell(row, catCol).String() == category {
			rows = append(rows, row)
		}
	}
	return inventory.Select(rows)
}

// FilterSalesByProducts keeps the sales rows whose product_id appears in the
// given inventory table. Used to propagate an active category filter into
// the sales-side aggregations.
func FilterSalesByProducts(sales, inventory *dataset.Table) *dataset.Table {
	salesCol, ok := sales.Lookup(dataset.ColProductID)
	if !ok {
		return sales
	}
	invCol, ok := inventory.Lookup(dataset.ColProductID)
	if !ok {
		return sales
	}

	ids := make(map[string]struct{}, inventory.RowCount())
	for row := 0; row < inventory.RowCount(); row++ {
		ids[inventory.Cell(row, invCol).String()] = struct{}{}
	}

	var rows []int
	for row := 0; row < sales.RowCount(); row++ {
		if _, ok := ids[sales.Cell(row, salesCol).String()]; ok {
			rows = append(rows, row)
		}
	}
	return sales.Select(rows)
}

// Categories lists the distinct, non-empty categories of the inventory table
// in first-appearance order, for the presentation layer's selector.
func Categories(inventory *dataset.Table) []string {
	catCol, ok := inventory.Lookup(dataset.ColCategory)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for row := 0; row < inventory.RowCount(); row++ {
		c := inventory.Cell(row, catCol).String()
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SaleDateBounds returns the earliest and latest present sale_date, for the
// presentation layer's date-range control. ok is false when no row carries a
// parseable date.
func SaleDateBounds(sales *dataset.Table) (min, max time.Time, ok bool) {
	dateCol, found := sales.Lookup(dataset.ColSaleDate)
	if !found {
		return time.Time{}, time.Time{}, false
	}
	for row := 0; row < sales.RowCount(); row++ {
		ts, valid := sales.Cell(row, dateCol).Time()
		if !valid {
			continue
		}
		if !ok || ts.Before(min) {
			min = ts
		}
		if !ok || ts.After(max) {
			max = ts
		}
		ok = true
	}
	return min, max, ok
}
