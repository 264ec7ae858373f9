package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilterSalesByDateInclusive(t *testing.T) {
	sales := salesTable([][]string{
		{"s1", "1", "p1", "2024-01-31", "1"},
		{"s2", "1", "p1", "2024-02-01", "2"},
		{"s3", "1", "p1", "2024-02-29", "3"},
		{"s4", "1", "p1", "2024-03-01", "4"},
	})

	filtered := FilterSalesByDate(sales, datePtr(2024, 2, 1), datePtr(2024, 2, 29))
	require.Equal(t, 2, filtered.RowCount())
	assert.Equal(t, "s2", filtered.Cell(0, 0).String())
	assert.Equal(t, "s3", filtered.Cell(1, 0).String())
}

func TestFilterSalesByDateOpenBounds(t *testing.T) {
	sales := salesTable([][]string{
		{"s1", "1", "p1", "2024-01-15", "1"},
		{"s2", "1", "p1", "2024-03-15", "2"},
	})

	// both nil: same table back, untouched
	assert.Same(t, sales, FilterSalesByDate(sales, nil, nil))

	onlyFrom := FilterSalesByDate(sales, datePtr(2024, 2, 1), nil)
	require.Equal(t, 1, onlyFrom.RowCount())
	assert.Equal(t, "s2", onlyFrom.Cell(0, 0).String())

	onlyTo := FilterSalesByDate(sales, nil, datePtr(2024, 2, 1))
	require.Equal(t, 1, onlyTo.RowCount())
	assert.Equal(t, "s1", onlyTo.Cell(0, 0).String())
}

func TestFilterSalesByDateExcludesMissing(t *testing.T) {
	sales := salesTable([][]string{
		{"s1", "1", "p1", "2024-01-15", "1"},
		{"s2", "1", "p1", "not a date", "2"},
	})

	filtered := FilterSalesByDate(sales, datePtr(2024, 1, 1), nil)
	require.Equal(t, 1, filtered.RowCount())
	assert.Equal(t, "s1", filtered.Cell(0, 0).String())
}

func TestFilterInventoryByCategory(t *testing.T) {
	inventory := inventoryTable([][]string{
		{"p1", "Widget", "Tools", "5", "40"},
		{"p2", "Chair", "Furniture", "30", "10"},
		{"p3", "Hammer", "Tools", "12", "80"},
	})

	tools := FilterInventoryByCategory(inventory, "Tools")
	require.Equal(t, 2, tools.RowCount())
	assert.Equal(t, "p1", tools.Cell(0, 0).String())
	assert.Equal(t, "p3", tools.Cell(1, 0).String())

	// the "All" sentinel and empty string disable the filter
	assert.Same(t, inventory, FilterInventoryByCategory(inventory, AllCategories))
	assert.Same(t, inventory, FilterInventoryByCategory(inventory, ""))

	none := FilterInventoryByCategory(inventory, "Toys")
	assert.Equal(t, 0, none.RowCount())
}

func TestFilterSalesByProducts(t *testing.T) {
	inventory := inventoryTable([][]string{
		{"p1", "Widget", "Tools", "5", "40"},
	})
	sales := salesTable([][]string{
		{"s1", "1", "p1", "2024-01-01", "1"},
		{"s2", "1", "p2", "2024-01-02", "2"},
	})

	filtered := FilterSalesByProducts(sales, inventory)
	require.Equal(t, 1, filtered.RowCount())
	assert.Equal(t, "s1", filtered.Cell(0, 0).String())
}

func TestCategories(t *testing.T) {
	inventory := inventoryTable([][]string{
		{"p1", "Widget", "Tools", "5", "40"},
		{"p2", "Chair", "Furniture", "30", "10"},
		{"p3", "Hammer", "Tools", "12", "80"},
		{"p4", "Mystery", "", "1", "1"},
	})

	assert.Equal(t, []string{"Tools", "Furniture"}, Categories(inventory))
}

func TestSaleDateBounds(t *testing.T) {
	sales := salesTable([][]string{
		{"s1", "1", "p1", "2024-03-10", "1"},
		{"s2", "1", "p1", "2024-01-05", "2"},
		{"s3", "1", "p1", "bad", "3"},
	})

	min, max, ok := SaleDateBounds(sales)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), min)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), max)

	_, _, ok = SaleDateBounds(salesTable(nil))
	assert.False(t, ok)
}
