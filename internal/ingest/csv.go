package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/slareport/internal/model"
)

// utf8BOM is stripped from the first header cell; spreadsheet tools often add it.
const utf8BOM = "\uFEFF"

// ReadCSV reads a CSV export with a header row.
// Rows shorter than the header are padded and longer rows are truncated,
// so a malformed line never aborts the whole file. Blank lines are skipped.
func ReadCSV(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return newTable(records)
}

// newTable builds a Table from raw records whose first record is the header.
func newTable(records [][]string) (*model.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrParse, errors.New("no header row"))
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	table := &model.Table{
		Header: header,
		Rows:   make([][]string, 0, len(records)-1),
	}

	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		table.Rows = append(table.Rows, fitWidth(rec, len(header)))
	}

	return table, nil
}

// fitWidth pads or truncates a record to width cells.
func fitWidth(rec []string, width int) []string {
	row := make([]string, width)
	copy(row, rec)
	return row
}

// isBlank reports whether every cell in the record is empty.
func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
