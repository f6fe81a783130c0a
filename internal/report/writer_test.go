package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/slareport/internal/model"
)

// createTestResult creates a result with sample data for testing.
func createTestResult() *model.ReportResult {
	return &model.ReportResult{
		Date: model.Date{Year: 2025, Month: time.March, Day: 5},
		Stores: []model.StoreSummary{
			{Store: "BLR_koramangala", Met: 1, Breach: 2, Total: 3, MetPercent: 33, BreachPercent: 67},
			{Store: "KOL-Topsia", Met: 1, Breach: 0, Total: 1, MetPercent: 100, BreachPercent: 0, Unclassified: 1},
		},
		GrandTotal: model.StoreSummary{
			Store: model.GrandTotalLabel, Met: 2, Breach: 2, Total: 4, MetPercent: 50, BreachPercent: 50, Unclassified: 1,
		},
		Stats: model.FilterStats{RowsRead: 9, DroppedStore: 1, DroppedStatus: 1, DroppedDate: 1, Classified: 4, Unclassified: 1},
		Orders: []model.ClassifiedOrder{
			{
				Order:          model.OrderRecord{Row: 8, Store: "KOL-Topsia", RawOrderDate: "garbage"},
				Classification: model.Classification{DeliveryType: model.DeliveryUnknown, Status: model.SLAUnknown},
			},
		},
	}
}

// createEmptyResult creates a result for a date without deliveries.
func createEmptyResult() *model.ReportResult {
	return &model.ReportResult{
		Date:       model.Date{Year: 2020, Month: time.January, Day: 1},
		Stores:     []model.StoreSummary{},
		GrandTotal: model.StoreSummary{Store: model.GrandTotalLabel},
	}
}

func TestFormatRows(t *testing.T) {
	t.Parallel()

	rows := FormatRows(createTestResult())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []string{"Grand Total", "2", "2", "4", "50%", "50%"}
	last := rows[len(rows)-1]
	for i := range want {
		if last[i] != want[i] {
			t.Errorf("cell %d: got %q, expected %q", i, last[i], want[i])
		}
	}
	if rows[0][4] != "33%" || rows[0][5] != "67%" {
		t.Errorf("unexpected percentages: %v", rows[0])
	}
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"SLA REPORT", "05/03/2025", "TOTAL DELIVERED ORDERS", "BLR_koramangala", "67%"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "FILTERING") {
			t.Error("filtering trace should only be shown in verbose mode")
		}
	})

	t.Run("grand total is the last table row", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.LastIndex(output, "KOL-Topsia") > strings.Index(output, "Grand Total") {
			t.Error("expected Grand Total after every store row")
		}
	})

	t.Run("verbose shows stats and unclassified orders", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "FILTERING") {
			t.Error("expected filtering section")
		}
		if !strings.Contains(output, "row 8") || !strings.Contains(output, `"garbage"`) {
			t.Error("expected unclassified order details")
		}
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createEmptyResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No delivered orders") {
			t.Error("expected empty notice")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes table with bold grand total and pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# SLA Report") {
			t.Error("expected H1 header")
		}
		if !strings.Contains(output, "**Grand Total**") {
			t.Error("expected bold grand total")
		}
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected mermaid code block")
		}
		if !strings.Contains(output, "pie") {
			t.Error("expected pie chart")
		}
	})

	t.Run("warns above breach threshold", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, WithBreachAlert(40)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected warning alert")
		}
	})

	t.Run("no warning below breach threshold", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, WithBreachAlert(60)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("unexpected warning alert")
		}
	})

	t.Run("empty result has no chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createEmptyResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if strings.Contains(output, "```mermaid") {
			t.Error("unexpected chart for empty result")
		}
		if !strings.Contains(output, "No delivered orders") {
			t.Error("expected empty notice")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes numeric percentages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Date       string `json:"date"`
			GrandTotal struct {
				Store      string `json:"store"`
				MetPercent int    `json:"sla_met_percent"`
			} `json:"grand_total"`
			Orders []any `json:"orders"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Date != "05/03/2025" {
			t.Errorf("unexpected date %q", decoded.Date)
		}
		if decoded.GrandTotal.Store != "Grand Total" || decoded.GrandTotal.MetPercent != 50 {
			t.Errorf("unexpected grand total: %+v", decoded.GrandTotal)
		}
		if decoded.Orders != nil {
			t.Error("orders should be omitted by default")
		}
	})

	t.Run("includes orders when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		result := createTestResult()
		if _, err := NewJSONWriter(&buf, WithOrders(true)).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"orders"`) {
			t.Error("expected orders in output")
		}
		if len(result.Orders) != 1 {
			t.Error("writer must not modify the result")
		}
	})

	t.Run("pretty prints", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("full writer wraps with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "v1.2.3").Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("unexpected version %q", decoded.Version)
		}
		if decoded.Report == nil || len(decoded.Report.Stores) != 2 {
			t.Errorf("unexpected report: %+v", decoded.Report)
		}
	})
}

// TestExcelWriter tests the XLSX report writer.
func TestExcelWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewExcelWriter(&buf).Write(createTestResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header, 2 stores and grand total, got %d rows", len(rows))
	}
	if rows[0][0] != ColumnStore || rows[3][0] != model.GrandTotalLabel {
		t.Errorf("unexpected layout: %v", rows)
	}
	if rows[1][4] != "33%" {
		t.Errorf("unexpected percentage cell %q", rows[1][4])
	}

	styleID, err := f.GetCellStyle(SummarySheet, "A4")
	if err != nil {
		t.Fatalf("failed to read style: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("failed to resolve style: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("expected bold grand total row")
	}

	naRows, err := f.GetRows(UnclassifiedSheet)
	if err != nil {
		t.Fatalf("failed to read unclassified sheet: %v", err)
	}
	if len(naRows) != 2 || naRows[1][2] != "garbage" {
		t.Errorf("unexpected unclassified rows: %v", naRows)
	}
}

// TestHTMLWriter tests the HTML report writer.
func TestHTMLWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders table with grand total", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf, WithBackLink("/")).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{`class="grand-total"`, "BLR_koramangala", "67%", "05/03/2025", `href="/"`} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("escapes store names", func(t *testing.T) {
		t.Parallel()

		result := createEmptyResult()
		result.Stores = []model.StoreSummary{{Store: "<script>x</script>"}}

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "<script>x") {
			t.Error("store name was not escaped")
		}
	})
}

// errWriter is a Writer that always fails.
type errWriter struct{ err error }

func (w errWriter) Write(*model.ReportResult) (int, error) { return 0, w.err }

// TestMultiWriter tests writing to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var text bytes.Buffer
		mw := NewMultiWriter(errWriter{err: boom}, NewSimpleWriter(&text))

		if _, err := mw.Write(createTestResult()); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if text.Len() != 0 {
			t.Error("second writer should not have been called")
		}
	})
}
