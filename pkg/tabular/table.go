// Package tabular reads and writes small tabular datasets (CSV, TSV and
// Excel workbooks) into a uniform in-memory form: a header row plus string
// data rows.
package tabular

// Table is an in-memory tabular dataset. Rows are padded or trimmed to the
// header width at read time, so len(Rows[i]) == len(Columns) always holds
// for tables produced by this package.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of name in t.Columns, or -1 when absent.
// Column names are matched exactly; no case folding or trimming.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with the exact name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

func newTable(header []string, rows [][]string) *Table {
	width := len(header)
	for i, row := range rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		case len(row) > width:
			rows[i] = row[:width]
		}
	}
	return &Table{Columns: header, Rows: rows}
}
