// Package table holds raw input files as ordered string columns.
//
// Cells are collapsed into core.Value when a table is built: empty strings
// and the usual spreadsheet NA markers are absent, everything else is present
// verbatim. Tables are immutable once built.
package table

import "github.com/leapstack-labs/leadsunifier/pkg/core"

// naTokens are the raw cell values treated as absent.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// Cell converts a raw cell into a Value.
func Cell(raw string) core.Value {
	if _, ok := naTokens[raw]; ok {
		return core.Absent
	}
	return core.Some(raw)
}

// Row is one table row, indexed by column position.
type Row []core.Value

// Get returns the cell at col, or absent when col is out of range.
func (r Row) Get(col int) core.Value {
	if col < 0 || col >= len(r) {
		return core.Absent
	}
	return r[col]
}

// Table is one input file.
type Table struct {
	// Name identifies the source, usually the file name.
	Name string

	columns []string
	rows    []Row
}

// New builds a table from a header and raw string rows. Rows shorter than
// the header are padded with absent cells; extra cells are dropped.
func New(name string, columns []string, rows [][]string) *Table {
	t := &Table{
		Name:    name,
		columns: uniqueColumns(columns),
		rows:    make([]Row, 0, len(rows)),
	}
	for _, raw := range rows {
		t.rows = append(t.rows, t.makeRow(raw))
	}
	return t
}

func (t *Table) makeRow(raw []string) Row {
	row := make(Row, len(t.columns))
	for i := range row {
		if i < len(raw) {
			row[i] = Cell(raw[i])
		}
	}
	return row
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column returns the name of column i.
func (t *Table) Column(i int) string {
	return t.columns[i]
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns row i.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the cell at (row, col).
func (t *Table) Value(row, col int) core.Value {
	return t.rows[row].Get(col)
}

// Sample returns up to limit present values of column col, in row order.
// A limit below one returns every present value.
func (t *Table) Sample(col, limit int) []string {
	var out []string
	for _, row := range t.rows {
		s, ok := row.Get(col).Get()
		if !ok {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
