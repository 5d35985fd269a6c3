package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the table as comma-separated values with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	return t.WriteDelimited(w, ',')
}

// WriteDelimited writes the table with the given field delimiter.
func (t *Table) WriteDelimited(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
