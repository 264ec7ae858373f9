// Package quality implements the on-demand data quality checks: row counts,
// orphaned foreign keys, and negative sale amounts. Checks are stateless and
// independent; each reads the normalized tables and nothing else.
package quality

import (
	"retailcli/internal/dataset"
)

// RowCounts is the per-table record tally. Always applicable, even with all
// three tables empty.
type RowCounts struct {
	Customers int `json:"customers_rows"`
	Inventory int `json:"inventory_rows"`
	Sales     int `json:"sales_rows"`
}

// CountRows tallies the rows of each normalized table.
func CountRows(snap *dataset.Snapshot) RowCounts {
	return RowCounts{
		Customers: snap.Customers.RowCount(),
		Inventory: snap.Inventory.RowCount(),
		Sales:     snap.Sales.RowCount(),
	}
}

// OrphanedSale identifies one sale whose customer reference does not resolve.
type OrphanedSale struct {
	SaleID     string `json:"sale_id"`
	CustomerID string `json:"customer_id"`
}

// OrphanReport carries the orphaned-sales result. The check compares two
// tables, so it needs both non-empty: with either side empty, Applicable is
// false, which is a different answer from "no orphans found". An empty
// Orphans slice with Applicable true is the genuine all-clear.
type OrphanReport struct {
	Applicable bool           `json:"applicable"`
	Orphans    []OrphanedSale `json:"orphans"`
}

// OrphanedSales lists the sales whose customer_id appears nowhere in the
// customers table, in original sales order.
func OrphanedSales(snap *dataset.Snapshot) OrphanReport {
	sales, customers := snap.Sales, snap.Customers
	if sales.IsEmpty() || customers.IsEmpty() {
		return OrphanReport{Applicable: false}
	}
	custCol, ok := sales.Lookup(dataset.ColCustomerID)
	if !ok {
		return OrphanReport{Applicable: false}
	}
	keyCol, ok := customers.Lookup(dataset.ColCustomerID)
	if !ok {
		return OrphanReport{Applicable: false}
	}
	saleIDCol, hasSaleID := sales.Lookup(dataset.ColSaleID)

	known := make(map[string]struct{}, customers.RowCount())
	for row := 0; row < customers.RowCount(); row++ {
		known[customers.Cell(row, keyCol).String()] = struct{}{}
	}

	report := OrphanReport{Applicable: true, Orphans: []OrphanedSale{}}
	for row := 0; row < sales.RowCount(); row++ {
		customerID := sales.Cell(row, custCol).String()
		if _, ok := known[customerID]; ok {
			continue
		}
		orphan := OrphanedSale{CustomerID: customerID}
		if hasSaleID {
			orphan.SaleID = sales.Cell(row, saleIDCol).String()
		}
		report.Orphans = append(report.Orphans, orphan)
	}
	return report
}

// NegativeAmount identifies one sale with a negative total.
type NegativeAmount struct {
	SaleID string  `json:"sale_id"`
	Amount float64 `json:"total_amount"`
}

// NegativeAmounts lists the sales whose total_amount is below zero, in
// original sales order. Unlike the orphan check this one reads a single
// table, so an empty sales table legitimately yields an empty result.
func NegativeAmounts(snap *dataset.Snapshot) []NegativeAmount {
	sales := snap.Sales
	amountCol, ok := sales.Lookup(dataset.ColTotalAmount)
	if !ok {
		return []NegativeAmount{}
	}
	saleIDCol, hasSaleID := sales.Lookup(dataset.ColSaleID)

	found := []NegativeAmount{}
	for row := 0; row < sales.RowCount(); row++ {
		amount, ok := sales.Cell(row, amountCol).Number()
		if !ok || amount >= 0 {
			continue
		}
		neg := NegativeAmount{Amount: amount}
		if hasSaleID {
			neg.SaleID = sales.Cell(row, saleIDCol).String()
		}
		found = append(found, neg)
	}
	return found
}
