package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/slareport/internal/model"
)

// Read reads a table from r, choosing the format from the extension of name.
// The sheet argument only applies to XLSX input.
func Read(r io.Reader, name, sheet string) (*model.Table, error) {
	var (
		table *model.Table
		err   error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		table, err = ReadCSV(r)
	case ".xlsx", ".xlsm":
		table, err = ReadXLSX(r, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, err
	}

	table.Source = filepath.Base(name)
	return table, nil
}

// ReadFile opens path and reads it with Read.
func ReadFile(path, sheet string) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Read(f, path, sheet)
}
