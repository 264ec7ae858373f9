package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"retailcli/internal/dataset"
)

// XLSXWriter serializes result tables as single-sheet Excel workbooks, the
// format the reporting consumers expect for spreadsheet hand-off.
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger.With(slog.String("component", "xlsx_writer"))}
}

// Write streams a table as an XLSX workbook with a single named sheet.
// Numeric and timestamp cells keep their native types so spreadsheet
// formulas work on the exported data.
func (w *XLSXWriter) Write(out io.Writer, sheet string, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	for col, name := range t.Columns() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header %q: %w", name, err)
		}
	}

	for row := 0; row < t.RowCount(); row++ {
		for col := range t.Columns() {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(t.Cell(row, col))); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile writes a table as an XLSX file, creating parent directories as
// needed.
func (w *XLSXWriter) WriteFile(path, sheet string, t *dataset.Table) error {
	w.logger.Info("writing XLSX file",
		slog.String("path", path),
		slog.Int("record_count", t.RowCount()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if err := w.Write(file, sheet, t); err != nil {
		return err
	}
	return file.Close()
}

// cellValue maps a dataset cell to the native type excelize stores.
func cellValue(c dataset.Cell) any {
	if n, ok := c.Number(); ok {
		return n
	}
	if ts, ok := c.Time(); ok {
		return ts
	}
	return c.String()
}
