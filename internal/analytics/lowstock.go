package analytics

import (
	"sort"

	"retailcli/internal/dataset"
)

// DefaultLowStockThreshold is the reference cutoff of the dashboard.
const DefaultLowStockThreshold = 100

// LowStock returns the inventory rows whose quantity_in_stock is strictly
// below the threshold, sorted ascending by stock quantity. The full rows are
// preserved so the result can be re-exported as-is. Empty inventory, or one
// without a quantity_in_stock column, yields a valid empty table.
func LowStock(inventory *dataset.Table, threshold float64) *dataset.Table {
	qtyCol, ok := inventory.Lookup(dataset.ColQuantityInStock)
	if !ok {
		return inventory.Select(nil)
	}

	type candidate struct {
		row int
		qty float64
	}
	var low []candidate
	for row := 0; row < inventory.RowCount(); row++ {
		qty, ok := inventory.Cell(row, qtyCol).Number()
		if !ok {
			continue
		}
		if qty < threshold {
			low = append(low, candidate{row: row, qty: qty})
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].qty < low[j].qty })

	rows := make([]int, len(low))
	for i, c := range low {
		rows[i] = c.row
	}
	return inventory.Select(rows)
}
