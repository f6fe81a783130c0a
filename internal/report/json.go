package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/slareport/internal/model"
)

// JSONWriter outputs reports in JSON format.
// Percentages are numbers here, not "NN%" strings, so that consumers do
// not have to parse them.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// withOrders includes the per-order detail in the output.
	withOrders bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithOrders includes every classified order in the output.
// By default only the aggregated rows and the filtering trace are written.
func WithOrders(include bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.withOrders = include
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(result *model.ReportResult) (int, error) {
	return w.writeJSON(w.view(result))
}

// view returns the value to marshal. The result is copied rather than
// modified when orders are excluded.
func (w *JSONWriter) view(result *model.ReportResult) *model.ReportResult {
	if w.withOrders || len(result.Orders) == 0 {
		return result
	}
	trimmed := *result
	trimmed.Orders = nil
	return &trimmed
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a result with the version of the tool that produced it.
//
// Design decision: We wrap the result rather than adding a version field
// to ReportResult because the version is an output concern, not part of
// the computation.
type JSONReport struct {
	// Version is the slareport version that generated this report.
	Version string `json:"version"`

	// Report is the report result.
	Report *model.ReportResult `json:"report"`
}

// FullJSONWriter outputs reports with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the slareport version string.
	version string
}

// NewFullJSONWriter creates a writer for reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the report wrapped with metadata.
func (w *FullJSONWriter) Write(result *model.ReportResult) (int, error) {
	return w.writeJSON(&JSONReport{
		Version: w.version,
		Report:  w.view(result),
	})
}
