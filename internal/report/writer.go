package report

import (
	"io"
	"strconv"

	"github.com/nao1215/slareport/internal/model"
)

// Column headers shared by every tabular writer.
const (
	ColumnStore         = "Order Dark Store"
	ColumnMetCount      = "SLA MET COUNT"
	ColumnBreachCount   = "SLA BREACH COUNT"
	ColumnTotal         = "TOTAL DELIVERED ORDERS"
	ColumnMetPercent    = "SLA MET%"
	ColumnBreachPercent = "SLA BREACH%"
)

// Columns lists the report columns in output order.
var Columns = []string{
	ColumnStore,
	ColumnMetCount,
	ColumnBreachCount,
	ColumnTotal,
	ColumnMetPercent,
	ColumnBreachPercent,
}

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or an HTTP
// response with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.ReportResult) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.ReportResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// FormatPercent renders an integer percentage as "NN%".
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatRow renders one summary row as display cells in Columns order.
func FormatRow(s model.StoreSummary) []string {
	return []string{
		s.Store,
		strconv.Itoa(s.Met),
		strconv.Itoa(s.Breach),
		strconv.Itoa(s.Total),
		FormatPercent(s.MetPercent),
		FormatPercent(s.BreachPercent),
	}
}

// FormatRows renders every store row followed by the grand total row.
func FormatRows(result *model.ReportResult) [][]string {
	rows := result.Rows()
	out := make([][]string, 0, len(rows))
	for _, s := range rows {
		out = append(out, FormatRow(s))
	}
	return out
}
