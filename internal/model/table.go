package model

// Table is a raw tabular export: one header row and string cells.
// Rows are always normalized to the header width by the readers.
type Table struct {
	// Source names where the table came from (file name or "upload").
	Source string

	// Header holds the column names with surrounding whitespace removed.
	Header []string

	// Rows holds the data rows, excluding the header.
	Rows [][]string
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
