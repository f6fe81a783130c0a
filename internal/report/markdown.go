package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/slareport/internal/model"
)

// DefaultBreachAlertPercent is the grand total breach percentage above
// which the Markdown report carries a warning.
const DefaultBreachAlertPercent = 20

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, mermaid charts and GitHub-flavored
// alerts without hand-escaping.
type MarkdownWriter struct {
	baseWriter

	// breachAlert is the breach percentage that triggers a warning.
	breachAlert int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithBreachAlert sets the grand total breach percentage above which a
// warning is added to the report.
func WithBreachAlert(percent int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.breachAlert = percent
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:  newBaseWriter(output),
		breachAlert: DefaultBreachAlertPercent,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(result *model.ReportResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeStats(md, result)
	w.writeUnclassified(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and target date.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ReportResult) {
	md.H1("SLA Report")
	md.PlainText("")
	md.PlainTextf("Delivered orders completed on **%s**.", result.Date)
	md.PlainText("")
}

// writeSummary writes the store table, the pie chart and the alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.ReportResult) {
	md.H2("Summary")
	md.PlainText("")

	rows := FormatRows(result)
	last := rows[len(rows)-1]
	for i, cell := range last {
		last[i] = "**" + cell + "**"
	}

	md.Table(markdown.TableSet{
		Header: Columns,
		Rows:   rows,
	})
	md.PlainText("")

	if result.GrandTotal.Total > 0 {
		w.writePieChart(md, result)
	}
	w.writeAlert(md, result)
}

// writePieChart writes a mermaid pie chart of grand total Met vs Breach.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.ReportResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("SLA Met vs Breach"),
		piechart.WithShowData(true),
	)

	gt := result.GrandTotal
	if gt.Met > 0 {
		chart.LabelAndIntValue("Met", uint64(gt.Met))
	}
	if gt.Breach > 0 {
		chart.LabelAndIntValue("Breach", uint64(gt.Breach))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert based on the grand total.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.ReportResult) {
	gt := result.GrandTotal
	switch {
	case gt.Total == 0:
		md.Note("No delivered orders for the selected date.")
	case gt.BreachPercent > w.breachAlert:
		md.Warningf(
			"SLA breach rate is %s, above the %s threshold. %d of %d orders missed their TAT.",
			FormatPercent(gt.BreachPercent), FormatPercent(w.breachAlert), gt.Breach, gt.Total,
		)
	case gt.Breach == 0:
		md.Tip("Every delivered order met its TAT.")
	default:
		md.Note(fmt.Sprintf("SLA breach rate is %s.", FormatPercent(gt.BreachPercent)))
	}
	md.PlainText("")

	if gt.Unclassified > 0 {
		md.Importantf("%d order(s) had an unreadable order date and are not counted above.", gt.Unclassified)
		md.PlainText("")
	}
}

// writeStats writes the filtering trace.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, result *model.ReportResult) {
	s := result.Stats

	md.H2("Filtering")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Rows"},
		Rows: [][]string{
			{"Rows read", strconv.Itoa(s.RowsRead)},
			{"Dropped (store not allow-listed)", strconv.Itoa(s.DroppedStore)},
			{"Dropped (not delivered)", strconv.Itoa(s.DroppedStatus)},
			{"Dropped (other date)", strconv.Itoa(s.DroppedDate)},
			{"Classified", strconv.Itoa(s.Classified)},
			{"Unclassified (NA)", strconv.Itoa(s.Unclassified)},
		},
	})
	md.PlainText("")
}

// writeUnclassified lists NA orders inside a collapsible block.
func (w *MarkdownWriter) writeUnclassified(md *markdown.Markdown, result *model.ReportResult) {
	orders := result.UnclassifiedOrders()
	if len(orders) == 0 {
		return
	}

	items := make([]string, len(orders))
	for i, o := range orders {
		items[i] = fmt.Sprintf("row %d, %s, order date %q", o.Order.Row, o.Order.Store, o.Order.RawOrderDate)
	}

	md.H2("Unclassified Orders")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by slareport*")
}
