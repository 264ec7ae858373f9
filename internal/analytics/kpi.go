package analytics

import (
	"retailcli/internal/dataset"
)

// Summary holds the four headline KPIs of the dashboard. Each metric is
// computed independently, so a missing source zeroes only its own value.
type Summary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	CustomerCount    int     `json:"customer_count"`
	ProductCount     int     `json:"product_count"`
	TransactionCount int     `json:"transaction_count"`
}

// Summarize computes the KPI scalars over a snapshot.
func Summarize(snap *dataset.Snapshot) Summary {
	return Summary{
		TotalRevenue:     sumColumn(snap.Sales, dataset.ColTotalAmount),
		CustomerCount:    snap.Customers.RowCount(),
		ProductCount:     snap.Inventory.RowCount(),
		TransactionCount: snap.Sales.RowCount(),
	}
}

// sumColumn totals the numeric cells of the named column. Uncoerced and
// missing cells contribute nothing; an absent column sums to zero.
func sumColumn(t *dataset.Table, column string) float64 {
	col, ok := t.Lookup(column)
	if !ok {
		return 0
	}
	var total float64
	for row := 0; row < t.RowCount(); row++ {
		if v, ok := t.Cell(row, col).Number(); ok {
			total += v
		}
	}
	return total
}
