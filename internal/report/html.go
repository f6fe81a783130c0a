package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/nao1215/slareport/internal/model"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// reportTemplate is parsed once; html/template is safe for concurrent use.
var reportTemplate = template.Must(
	template.New("report.html.tmpl").
		Funcs(template.FuncMap{"percent": FormatPercent}).
		ParseFS(templateFS, "templates/report.html.tmpl"),
)

// HTMLWriter outputs reports as a standalone HTML page.
// Store names come from user uploads, so rendering goes through
// html/template, which escapes them.
type HTMLWriter struct {
	baseWriter

	// backLink, when set, adds a link back to the upload form.
	backLink string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithBackLink adds a link to href below the report.
func WithBackLink(href string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.backLink = href
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// htmlView is the data handed to the template.
type htmlView struct {
	Result   *model.ReportResult
	Columns  []string
	BackLink string
}

// Write renders the report page. The page is rendered into a buffer first
// so a template error never leaves a half-written page behind.
func (w *HTMLWriter) Write(result *model.ReportResult) (int, error) {
	var buf bytes.Buffer
	view := htmlView{
		Result:   result,
		Columns:  Columns,
		BackLink: w.backLink,
	}
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return 0, fmt.Errorf("failed to render HTML report: %w", err)
	}
	return w.output.Write(buf.Bytes())
}
