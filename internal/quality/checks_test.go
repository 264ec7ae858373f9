package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/dataset"
)

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

func salesTable(rows [][]string) *dataset.Table {
	return buildTable([]string{"sale_id", "customer_id", "total_amount"}, rows, dataset.SalesRules)
}

func customersTable(rows [][]string) *dataset.Table {
	return buildTable([]string{"customer_id", "customer_name"}, rows, dataset.CustomerRules)
}

func TestCountRows(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}}),
		buildTable([]string{"product_id"}, [][]string{{"p1"}, {"p2"}}, dataset.InventoryRules),
		salesTable([][]string{{"s1", "1", "5"}, {"s2", "1", "6"}, {"s3", "1", "7"}}))

	counts := CountRows(snap)
	assert.Equal(t, RowCounts{Customers: 1, Inventory: 2, Sales: 3}, counts)
}

func TestCountRowsAllEmpty(t *testing.T) {
	counts := CountRows(snapshot(nil, nil, nil))
	assert.Equal(t, RowCounts{}, counts)
}

func TestOrphanedSales(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}, {"2", "Beta"}}),
		nil,
		salesTable([][]string{{"9", "3", "10"}}))

	report := OrphanedSales(snap)
	require.True(t, report.Applicable)
	require.Len(t, report.Orphans, 1)
	assert.Equal(t, OrphanedSale{SaleID: "9", CustomerID: "3"}, report.Orphans[0])
}

func TestOrphanedSalesSourceOrder(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}}),
		nil,
		salesTable([][]string{
			{"s1", "7", "10"},
			{"s2", "1", "10"},
			{"s3", "8", "10"},
		}))

	report := OrphanedSales(snap)
	require.True(t, report.Applicable)
	require.Len(t, report.Orphans, 2)
	assert.Equal(t, "s1", report.Orphans[0].SaleID)
	assert.Equal(t, "s3", report.Orphans[1].SaleID)
}

func TestOrphanedSalesInsufficientData(t *testing.T) {
	// empty customers: not applicable, which is different from "no orphans"
	report := OrphanedSales(snapshot(nil, nil, salesTable([][]string{{"9", "3", "10"}})))
	assert.False(t, report.Applicable)
	assert.Nil(t, report.Orphans)

	report = OrphanedSales(snapshot(customersTable([][]string{{"1", "Alpha"}}), nil, nil))
	assert.False(t, report.Applicable)
}

func TestOrphanedSalesNoneFound(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}}),
		nil,
		salesTable([][]string{{"s1", "1", "10"}}))

	report := OrphanedSales(snap)
	assert.True(t, report.Applicable)
	assert.Empty(t, report.Orphans)
	assert.NotNil(t, report.Orphans)
}

func TestNegativeAmounts(t *testing.T) {
	snap := snapshot(nil, nil, salesTable([][]string{
		{"1", "c1", "-5"},
		{"2", "c1", "10"},
	}))

	found := NegativeAmounts(snap)
	require.Len(t, found, 1)
	assert.Equal(t, NegativeAmount{SaleID: "1", Amount: -5}, found[0])
}

func TestNegativeAmountsEmptySales(t *testing.T) {
	// a single-table check: empty sales is a legitimate empty answer
	found := NegativeAmounts(snapshot(nil, nil, nil))
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestNegativeAmountsIgnoresCoercedZero(t *testing.T) {
	snap := snapshot(nil, nil, salesTable([][]string{
		{"1", "c1", "garbage"}, // coerces to 0, not negative
		{"2", "c1", "-0.01"},
	}))

	found := NegativeAmounts(snap)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].SaleID)
}
