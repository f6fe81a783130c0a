package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/slareport/internal/model"
)

// ruleWidth is the width of the section rulers.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with an aligned table
// and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and is easy to pipe to
// files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables the filtering trace and the unclassified orders.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(result *model.ReportResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeTable(&sb, result)
	if w.verbose {
		w.writeStats(&sb, result)
		w.writeUnclassified(&sb, result)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report title and target date.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.ReportResult) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                            SLA REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Date:   %s\n", result.Date))
	sb.WriteString(fmt.Sprintf("Stores: %d\n\n", len(result.Stores)))
}

// writeTable writes the store rows and grand total as an aligned table.
// Counts and percentages are right-aligned, store names left-aligned.
func (w *SimpleWriter) writeTable(sb *strings.Builder, result *model.ReportResult) {
	rows := FormatRows(result)

	widths := make([]int, len(Columns))
	for i, c := range Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if i == 0 {
				sb.WriteString(cell + pad)
			} else {
				sb.WriteString(pad + cell)
			}
		}
		sb.WriteString("\n")
	}

	separator := func() {
		parts := make([]string, len(widths))
		for i, n := range widths {
			parts[i] = strings.Repeat("-", n)
		}
		sb.WriteString(strings.Join(parts, "  "))
		sb.WriteString("\n")
	}

	writeLine(Columns)
	separator()
	for i, row := range rows {
		// The grand total is always last and set apart.
		if i == len(rows)-1 {
			separator()
		}
		writeLine(row)
	}
	sb.WriteString("\n")

	if result.IsEmpty() {
		sb.WriteString("  No delivered orders for the selected date\n\n")
	}
}

// writeStats writes the filtering trace.
func (w *SimpleWriter) writeStats(sb *strings.Builder, result *model.ReportResult) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("FILTERING\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")

	s := result.Stats
	sb.WriteString(fmt.Sprintf("  Rows read:              %d\n", s.RowsRead))
	sb.WriteString(fmt.Sprintf("  Dropped (store):        %d\n", s.DroppedStore))
	sb.WriteString(fmt.Sprintf("  Dropped (status):       %d\n", s.DroppedStatus))
	sb.WriteString(fmt.Sprintf("  Dropped (date):         %d\n", s.DroppedDate))
	sb.WriteString(fmt.Sprintf("  Classified:             %d\n", s.Classified))
	sb.WriteString(fmt.Sprintf("  Unclassified (NA):      %d\n", s.Unclassified))
	sb.WriteString("\n")
}

// writeUnclassified lists the orders whose order timestamp could not be parsed.
func (w *SimpleWriter) writeUnclassified(sb *strings.Builder, result *model.ReportResult) {
	orders := result.UnclassifiedOrders()
	if len(orders) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("UNCLASSIFIED ORDERS\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")

	for _, o := range orders {
		sb.WriteString(fmt.Sprintf("  * row %d  %s  order date %q\n",
			o.Order.Row, o.Order.Store, o.Order.RawOrderDate))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
