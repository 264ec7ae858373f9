package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retailcli/internal/dataset"
)

func TestSummarize(t *testing.T) {
	snap := snapshot(
		customersTable([][]string{{"1", "Alpha"}, {"2", "Beta"}}),
		inventoryTable([][]string{{"p1", "Widget", "Tools", "5", "40"}}),
		salesTable([][]string{
			{"1", "1", "p1", "2024-01-10", "10"},
			{"2", "2", "p1", "2024-01-11", "abc"},
			{"3", "1", "p1", "2024-02-01", "-5"},
		}))

	summary := Summarize(snap)
	assert.Equal(t, 5.0, summary.TotalRevenue) // 10 + 0 + -5
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, 1, summary.ProductCount)
	assert.Equal(t, 3, summary.TransactionCount)
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	summary := Summarize(snapshot(nil, nil, nil))
	assert.Equal(t, Summary{}, summary)
}

func TestSummarizeIndependentMetrics(t *testing.T) {
	// only sales present: revenue and transactions computed, the rest zero
	snap := snapshot(nil, nil, salesTable([][]string{
		{"1", "1", "p1", "2024-01-10", "42"},
	}))

	summary := Summarize(snap)
	assert.Equal(t, 42.0, summary.TotalRevenue)
	assert.Equal(t, 1, summary.TransactionCount)
	assert.Equal(t, 0, summary.CustomerCount)
	assert.Equal(t, 0, summary.ProductCount)
}

func TestSummarizeMissingAmountColumn(t *testing.T) {
	sales := buildTable([]string{"sale_id"}, [][]string{{"1"}}, dataset.SalesRules)

	summary := Summarize(snapshot(nil, nil, sales))
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 1, summary.TransactionCount)
}
