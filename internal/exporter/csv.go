package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"retailcli/internal/dataset"
)

// CSVWriter serializes result tables back to CSV, both to files on disk and
// to streams for HTTP downloads.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteOptions configures CSV output behavior.
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write streams a table as CSV: header row first, then every record in
// order, cells rendered with their display formatting.
func (w *CSVWriter) Write(out io.Writer, t *dataset.Table, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range t.Strings() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes a table as a CSV file, creating parent directories as
// needed. Files carry a UTF-8 BOM so Excel opens them correctly.
func (w *CSVWriter) WriteFile(path string, t *dataset.Table) error {
	w.logger.Info("writing CSV file",
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

	if err := w.Write(file, t, WriteOptions{BOMPrefix: true}); err != nil {
		return err
	}
	return file.Close()
}
