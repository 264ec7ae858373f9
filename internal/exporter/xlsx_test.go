package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWrite(t *testing.T) {
	var buf bytes.Buffer
	err := NewXLSXWriter(nil).Write(&buf, "Low Stock", lowStockFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Low Stock"}, f.GetSheetList())

	header, err := f.GetCellValue("Low Stock", "A1")
	require.NoError(t, err)
	assert.Equal(t, "product_id", header)

	name, err := f.GetCellValue("Low Stock", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Widget", name)

	qty, err := f.GetCellValue("Low Stock", "C3")
	require.NoError(t, err)
	assert.Equal(t, "99", qty)
}

func TestXLSXWriteDefaultSheet(t *testing.T) {
	var buf bytes.Buffer
	err := NewXLSXWriter(nil).Write(&buf, "", lowStockFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
