package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Source provides one table worth of raw string cells. The engine's contract
// is "a table with named columns and string-valued cells"; the serialization
// behind it is a source detail.
//
// A source whose backing file does not exist must return a zero-row,
// zero-column table and a nil error: a missing dataset degrades the report,
// it never blocks it. A file that exists but cannot be read structurally is
// the one hard failure and must surface an error.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Load materializes the table.
	Load(ctx context.Context) (*Table, error)
	// Signature returns the cache invalidation key for the backing file.
	Signature() Signature
}

// Signature captures source identity plus a modification fingerprint. Two
// equal signatures mean the source content is unchanged and a cached
// snapshot may be reused.
type Signature struct {
	Path    string
	Exists  bool
	Size    int64
	ModTime time.Time
}

func fileSignature(path string) Signature {
	info, err := os.Stat(path)
	if err != nil {
		return Signature{Path: path}
	}
	return Signature{Path: path, Exists: true, Size: info.Size(), ModTime: info.ModTime()}
}

// NewFileSource picks a source implementation from the file extension:
// SQLite database files by .db/.sqlite/.sqlite3, CSV otherwise. table names
// the SQLite table to read and is ignored for CSV.
func NewFileSource(name, path, table string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteSource{name: name, path: path, table: table}
	default:
		return &CSVSource{name: name, path: path}
	}
}

// CSVSource reads a table from a CSV file. The first record is the column
// schema; a UTF-8 BOM is stripped so Excel-authored files load cleanly.
type CSVSource struct {
	name string
	path string
}

// NewCSVSource creates a CSV-backed source.
func NewCSVSource(name, path string) *CSVSource {
	return &CSVSource{name: name, path: path}
}

func (s *CSVSource) Name() string { return s.name }

func (s *CSVSource) Signature() Signature { return fileSignature(s.path) }

func (s *CSVSource) Load(ctx context.Context) (*Table, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s source %s: %w", s.name, s.path, err)
	}

	// Strip UTF-8 BOM if present
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s source %s: %w", s.name, s.path, err)
	}
	if len(records) == 0 {
		return Empty(), nil
	}

	rows := make([][]Cell, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]Cell, len(rec))
		for j, v := range rec {
			row[j] = StringCell(v)
		}
		rows = append(rows, row)
	}
	return NewTable(records[0], rows), nil
}

// SQLiteSource reads a table from an embedded SQLite database, the format the
// migration tooling emits alongside raw CSV dumps. NULLs load as the missing
// marker.
type SQLiteSource struct {
	name  string
	path  string
	table string
}

// NewSQLiteSource creates a SQLite-backed source reading the named table.
func NewSQLiteSource(name, path, table string) *SQLiteSource {
	return &SQLiteSource{name: name, path: path, table: table}
}

func (s *SQLiteSource) Name() string { return s.name }

func (s *SQLiteSource) Signature() Signature { return fileSignature(s.path) }

func (s *SQLiteSource) Load(ctx context.Context) (*Table, error) {
	// Stat first: sql.Open would create an empty database file.
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return Empty(), nil
	}

	db, err := sql.Open("sqlite", s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s source %s: %w", s.name, s.path, err)
	}
	defer db.Close()

	exists, err := s.tableExists(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("inspect %s source %s: %w", s.name, s.path, err)
	}
	if !exists {
		return Empty(), nil
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", s.table))
	if err != nil {
		return nil, fmt.Errorf("query %s source %s: %w", s.name, s.path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s source columns: %w", s.name, err)
	}

	var records [][]Cell
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s source row: %w", s.name, err)
		}
		rec := make([]Cell, len(columns))
		for i, v := range values {
			rec[i] = sqlCell(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s source: %w", s.name, err)
	}
	return NewTable(columns, records), nil
}

func (s *SQLiteSource) tableExists(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		s.table).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func sqlCell(v any) Cell {
	switch val := v.(type) {
	case nil:
		return MissingCell()
	case []byte:
		return StringCell(string(val))
	case string:
		return StringCell(val)
	case int64:
		return NumberCell(float64(val))
	case float64:
		return NumberCell(val)
	case time.Time:
		return TimeCell(val.UTC())
	default:
		return StringCell(fmt.Sprint(val))
	}
}
