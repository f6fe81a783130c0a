package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/slareport/internal/model"
)

// Sheet names used by ExcelWriter.
const (
	SummarySheet      = "SLA Report"
	UnclassifiedSheet = "Unclassified"
)

// ExcelWriter outputs reports as an XLSX workbook.
// The summary sheet mirrors the table of the other writers. Counts are
// stored as numbers so spreadsheet formulas keep working; percentages are
// stored as "NN%" text, matching the other formats.
type ExcelWriter struct {
	baseWriter
}

// NewExcelWriter creates an ExcelWriter that outputs to the given writer.
func NewExcelWriter(output io.Writer) *ExcelWriter {
	return &ExcelWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report as a workbook.
func (w *ExcelWriter) Write(result *model.ReportResult) (int, error) {
	f, err := w.build(result)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := f.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("failed to write workbook: %w", err)
	}
	return int(n), nil
}

// build creates the workbook in memory.
func (w *ExcelWriter) build(result *model.ReportResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := w.writeSummary(f, result, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeUnclassified(f, result, bold); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// writeSummary writes the header, store rows and the bold grand total row.
func (w *ExcelWriter) writeSummary(f *excelize.File, result *model.ReportResult, bold int) error {
	if err := setRow(f, SummarySheet, 1, stringsToCells(Columns)); err != nil {
		return err
	}
	if err := styleRow(f, SummarySheet, 1, len(Columns), bold); err != nil {
		return err
	}

	rows := result.Rows()
	for i, s := range rows {
		rowNum := i + 2
		cells := []any{
			s.Store,
			s.Met,
			s.Breach,
			s.Total,
			FormatPercent(s.MetPercent),
			FormatPercent(s.BreachPercent),
		}
		if err := setRow(f, SummarySheet, rowNum, cells); err != nil {
			return err
		}
		if s.IsGrandTotal() {
			if err := styleRow(f, SummarySheet, rowNum, len(cells), bold); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "B", "F", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

// writeUnclassified adds a sheet listing NA orders, when there are any.
func (w *ExcelWriter) writeUnclassified(f *excelize.File, result *model.ReportResult, bold int) error {
	orders := result.UnclassifiedOrders()
	if len(orders) == 0 {
		return nil
	}

	if _, err := f.NewSheet(UnclassifiedSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := []any{"Row", "Order Dark Store", "Order Date", "End Time (Actual)"}
	if err := setRow(f, UnclassifiedSheet, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, UnclassifiedSheet, 1, len(header), bold); err != nil {
		return err
	}

	for i, o := range orders {
		cells := []any{o.Order.Row, o.Order.Store, o.Order.RawOrderDate, o.Order.RawEndTime}
		if err := setRow(f, UnclassifiedSheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes cells starting at column A of rowNum.
func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// styleRow applies style to the first width cells of rowNum.
func styleRow(f *excelize.File, sheet string, rowNum, width, style int) error {
	first, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("failed to style row %d: %w", rowNum, err)
	}
	return nil
}

func stringsToCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
