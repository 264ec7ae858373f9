package dataset

// Table is an ordered collection of records sharing a named column schema.
// Tables are immutable once built: every transformation (normalization,
// filtering, row selection) produces a new Table and leaves the receiver
// untouched, which makes concurrent readers safe without locking.
type Table struct {
	columns []string
	records [][]Cell
}

// NewTable builds a table from a column schema and record rows. Short rows
// are padded with empty string cells so every record matches the schema
// width; extra cells beyond the schema are dropped.
func NewTable(columns []string, records [][]Cell) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)

	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, len(cols))
		for j := range row {
			if j < len(rec) {
				row[j] = rec[j]
			} else {
				row[j] = StringCell("")
			}
		}
		rows[i] = row
	}
	return &Table{columns: cols, records: rows}
}

// Empty returns a zero-row, zero-column table. It is the stand-in for an
// absent source: downstream aggregations treat it as "zero records".
func Empty() *Table {
	return &Table{}
}

// RowCount returns the number of records.
func (t *Table) RowCount() int {
	return len(t.records)
}

// IsEmpty reports whether the table has no records.
func (t *Table) IsEmpty() bool {
	return len(t.records) == 0
}

// Columns returns a copy of the column schema.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Lookup returns the index of the named column, or false when the column is
// not part of the schema. Features depending on an absent column degrade
// rather than fail, so callers must check the second result.
func (t *Table) Lookup(name string) (int, bool) {
	for i, c := range t.columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Cell returns the value at the given record and column index.
func (t *Table) Cell(row, col int) Cell {
	return t.records[row][col]
}

// Value returns the cell in the named column of the given record. The second
// result is false when the column does not exist.
func (t *Table) Value(row int, column string) (Cell, bool) {
	col, ok := t.Lookup(column)
	if !ok {
		return Cell{}, false
	}
	return t.records[row][col], true
}

// Select builds a new table containing the given records, in the given
// order, over the same schema. Record rows are shared with the receiver,
// which is safe because tables are never mutated.
func (t *Table) Select(rows []int) *Table {
	records := make([][]Cell, len(rows))
	for i, r := range rows {
		records[i] = t.records[r]
	}
	return &Table{columns: t.columns, records: records}
}

// Strings renders every record as display strings, row-major. Used by the
// exporters and by tests.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.records))
	for i, rec := range t.records {
		row := make([]string, len(rec))
		for j, c := range rec {
			row[j] = c.String()
		}
		out[i] = row
	}
	return out
}
