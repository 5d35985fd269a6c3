package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Read parses r in the format implied by the file name's extension.
// Supported: .csv, .tsv, .xlsx, .xls.
func Read(name string, r io.Reader) (*Table, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ReadCSV(r, ',')
	case strings.HasSuffix(lower, ".tsv"):
		return ReadCSV(r, '\t')
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ReadWorkbook(r)
	}
	return nil, fmt.Errorf("unsupported table format: %q", name)
}

// ReadCSV parses delimiter-separated content. A leading byte-order mark is
// stripped and UTF-16 input is transparently decoded. The first record is
// the header; field values are kept exactly as written, without trimming.
func ReadCSV(r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, errors.New("empty table: no header row")
	}

	return newTable(all[0], all[1:]), nil
}
