package ingest

import (
	"errors"
	"strings"
)

var (
	// ErrParse is returned when the input cannot be read as a table at all.
	ErrParse = errors.New("unable to read input table")

	// ErrMissingColumn is returned when a required column is absent.
	// The concrete error is a *MissingColumnError listing every missing column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format: expected .csv or .xlsx")
)

// MissingColumnError names the required columns absent from a table.
type MissingColumnError struct {
	Columns []string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = `"` + c + `"`
	}
	return ErrMissingColumn.Error() + ": " + strings.Join(quoted, ", ")
}

// Is makes errors.Is(err, ErrMissingColumn) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
