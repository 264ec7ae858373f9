package analytics

import (
	"time"

	"retailcli/internal/dataset"
)

// buildTable creates a normalized table from string rows, the way the loader
// produces them.
func buildTable(columns []string, rows [][]string, rules []dataset.Rule) *dataset.Table {
	records := make([][]dataset.Cell, len(rows))
	for i, row := range rows {
		rec := make([]dataset.Cell, len(row))
		for j, v := range row {
			rec[j] = dataset.StringCell(v)
		}
		records[i] = rec
	}
	return dataset.Normalize(dataset.NewTable(columns, records), rules)
}

func salesTable(rows [][]string) *dataset.Table {
	return buildTable(
		[]string{"sale_id", "customer_id", "product_id", "sale_date", "total_amount"},
		rows, dataset.SalesRules)
}

func customersTable(rows [][]string) *dataset.Table {
	return buildTable([]string{"customer_id", "customer_name"}, rows, dataset.CustomerRules)
}

func inventoryTable(rows [][]string) *dataset.Table {
	return buildTable(
		[]string{"product_id", "product_name", "category", "price_per_unit", "quantity_in_stock"},
		rows, dataset.InventoryRules)
}

func snapshot(customers, inventory, sales *dataset.Table) *dataset.Snapshot {
	if customers == nil {
		customers = dataset.Empty()
	}
	if inventory == nil {
		inventory = dataset.Empty()
	}
	if sales == nil {
		sales = dataset.Empty()
	}
	return &dataset.Snapshot{
		Customers: customers,
		Inventory: inventory,
		Sales:     sales,
		LoadedAt:  time.Now(),
	}
}
