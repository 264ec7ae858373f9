// Package exporter re-serializes result tables for download and hand-off.
//
// CSVWriter streams tables as CSV with an optional UTF-8 BOM for Excel
// compatibility; XLSXWriter produces single-sheet Excel workbooks with
// native numeric and date cells. Both write to files or to any io.Writer,
// so the HTTP layer can stream downloads without temp files.
package exporter
