package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringTable(columns []string, rows [][]string) *Table {
	records := make([][]Cell, len(rows))
	for i, row := range rows {
		rec := make([]Cell, len(row))
		for j, v := range row {
			rec[j] = StringCell(v)
		}
		records[i] = rec
	}
	return NewTable(columns, records)
}

func TestEmptyTable(t *testing.T) {
	empty := Empty()
	assert.Equal(t, 0, empty.RowCount())
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.Columns())
}

func TestNewTablePadsShortRows(t *testing.T) {
	table := stringTable([]string{"a", "b", "c"}, [][]string{
		{"1"},
		{"2", "3", "4", "5"},
	})
	require.Equal(t, 2, table.RowCount())

	assert.Equal(t, "1", table.Cell(0, 0).String())
	assert.Equal(t, "", table.Cell(0, 2).String())
	// extra cell beyond the schema is dropped
	assert.Equal(t, "4", table.Cell(1, 2).String())
}

func TestLookup(t *testing.T) {
	table := stringTable([]string{"customer_id", "customer_name"}, nil)

	idx, ok := table.Lookup("customer_name")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = table.Lookup("missing_column")
	assert.False(t, ok)
	assert.False(t, table.HasColumn("missing_column"))
}

func TestValueMissingColumn(t *testing.T) {
	table := stringTable([]string{"a"}, [][]string{{"x"}})

	cell, ok := table.Value(0, "a")
	require.True(t, ok)
	assert.Equal(t, "x", cell.String())

	_, ok = table.Value(0, "b")
	assert.False(t, ok)
}

func TestSelectPreservesOrder(t *testing.T) {
	table := stringTable([]string{"v"}, [][]string{{"a"}, {"b"}, {"c"}})

	sub := table.Select([]int{2, 0})
	require.Equal(t, 2, sub.RowCount())
	assert.Equal(t, "c", sub.Cell(0, 0).String())
	assert.Equal(t, "a", sub.Cell(1, 0).String())

	// source table untouched
	assert.Equal(t, 3, table.RowCount())
}

func TestStringsRendersTypedCells(t *testing.T) {
	table := NewTable([]string{"n", "m"}, [][]Cell{
		{NumberCell(10.5), MissingCell()},
	})
	rows := table.Strings()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"10.5", ""}, rows[0])
}
