package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCustomers(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}, {"2", "Beta"}, {"3", "Gamma"}}),
		nil,
		salesTable([][]string{
			{"s1", "1", "p1", "2024-01-01", "10"},
			{"s2", "2", "p1", "2024-01-02", "50"},
			{"s3", "1", "p1", "2024-01-03", "15"},
			{"s4", "3", "p1", "2024-01-04", "5"},
		}))

	report := TopCustomers(snap, 2)
	require.True(t, report.Applicable)
	require.Len(t, report.Entries, 2)

	assert.Equal(t, "2", report.Entries[0].ID)
	require.NotNil(t, report.Entries[0].Name)
	assert.Equal(t, "Beta", *report.Entries[0].Name)
	assert.Equal(t, 50.0, report.Entries[0].Revenue)

	assert.Equal(t, "1", report.Entries[1].ID)
	assert.Equal(t, 25.0, report.Entries[1].Revenue)
}

func TestTopCustomersLeftJoinKeepsUnmatched(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}}),
		nil,
		salesTable([][]string{
			{"s1", "99", "p1", "2024-01-01", "100"}, // unknown customer
			{"s2", "1", "p1", "2024-01-02", "10"},
		}))

	report := TopCustomers(snap, 10)
	require.True(t, report.Applicable)
	require.Len(t, report.Entries, 2)

	assert.Equal(t, "99", report.Entries[0].ID)
	assert.Nil(t, report.Entries[0].Name)
	assert.Equal(t, 100.0, report.Entries[0].Revenue)
}

func TestTopCustomersTieOrderStable(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}, {"2", "Beta"}, {"3", "Gamma"}}),
		nil,
		salesTable([][]string{
			{"s1", "2", "p1", "2024-01-01", "20"},
			{"s2", "1", "p1", "2024-01-02", "20"},
			{"s3", "3", "p1", "2024-01-03", "20"},
		}))

	first := TopCustomers(snap, 10)
	for range 25 {
		again := TopCustomers(snap, 10)
		assert.Equal(t, first, again)
	}

	// ties keep first-appearance order from the sales table
	assert.Equal(t, "2", first.Entries[0].ID)
	assert.Equal(t, "1", first.Entries[1].ID)
	assert.Equal(t, "3", first.Entries[2].ID)
}

func TestTopCustomersInsufficientData(t *testing.T) {
	sales := salesTable([][]string{{"s1", "1", "p1", "2024-01-01", "10"}})

	report := TopCustomers(snapshot(nil, nil, sales), 10)
	assert.False(t, report.Applicable)
	assert.Empty(t, report.Entries)

	customers := customersTable([][]string{{"1", "Alpha"}})
	report = TopCustomers(snapshot(customers, nil, nil), 10)
	assert.False(t, report.Applicable)
}

func TestTopProducts(t *testing.T) {
	snap := snapshot(
		nil,
		inventoryTable([][]string{
			{"p1", "Widget", "Tools", "5", "40"},
			{"p2", "Gadget", "Tools", "9", "10"},
		}),
		salesTable([][]string{
			{"s1", "1", "p2", "2024-01-01", "90"},
			{"s2", "1", "p1", "2024-01-02", "30"},
			{"s3", "1", "pX", "2024-01-03", "60"}, // unknown product kept
		}))

	report := TopProducts(snap, 10)
	require.True(t, report.Applicable)
	require.Len(t, report.Entries, 3)

	assert.Equal(t, "p2", report.Entries[0].ID)
	require.NotNil(t, report.Entries[0].Name)
	assert.Equal(t, "Gadget", *report.Entries[0].Name)

	assert.Equal(t, "pX", report.Entries[1].ID)
	assert.Nil(t, report.Entries[1].Name)
	assert.Equal(t, 60.0, report.Entries[1].Revenue)
}

func TestTopNLimit(t *testing.T) {
	rows := [][]string{}
	customers := [][]string{}
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		customers = append(customers, []string{id, "C" + id})
		rows = append(rows, []string{"s" + id, id, "p1", "2024-01-01", "10"})
	}
	snap := snapshot(customersTable(customers), nil, salesTable(rows))

	report := TopCustomers(snap, 10)
	assert.Len(t, report.Entries, 10)
}
