package ingest

import (
	"log/slog"

	"github.com/nao1215/slareport/internal/model"
	"github.com/nao1215/slareport/internal/sla"
)

// Required column names of the delivery export.
const (
	ColumnOrderDate = "Order Date"
	ColumnEndTime   = "End Time (Actual)"
	ColumnStore     = "Order Dark Store"
	ColumnStatus    = "Order Status"
)

// RequiredColumns lists every column the decoder needs, in report order.
var RequiredColumns = []string{
	ColumnOrderDate,
	ColumnEndTime,
	ColumnStore,
	ColumnStatus,
}

// Decoder converts a model.Table into order records.
type Decoder struct {
	logger *slog.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithDecoderLogger sets the logger used for row-level diagnostics.
func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// columnIndexes maps each required column to its position in the table.
type columnIndexes struct {
	orderDate, endTime, store, status int
}

// resolveColumns returns a *MissingColumnError naming every absent column.
func resolveColumns(table *model.Table) (columnIndexes, error) {
	var missing []string
	find := func(name string) int {
		i := table.ColumnIndex(name)
		if i < 0 {
			missing = append(missing, name)
		}
		return i
	}

	idx := columnIndexes{
		orderDate: find(ColumnOrderDate),
		endTime:   find(ColumnEndTime),
		store:     find(ColumnStore),
		status:    find(ColumnStatus),
	}
	if len(missing) > 0 {
		return columnIndexes{}, &MissingColumnError{Columns: missing}
	}
	return idx, nil
}

// Decode validates the table schema and converts every row to an OrderRecord.
// Each cell is cleaned of spreadsheet escape wrappers before use. Timestamps
// that fail to parse become nil; they never make Decode fail.
func (d *Decoder) Decode(table *model.Table) ([]model.OrderRecord, error) {
	idx, err := resolveColumns(table)
	if err != nil {
		return nil, err
	}

	orders := make([]model.OrderRecord, 0, len(table.Rows))
	var badTimestamps int

	for i, row := range table.Rows {
		rec := model.OrderRecord{
			// Line 1 is the header.
			Row:          i + 2,
			Store:        sla.CleanCell(cell(row, idx.store)),
			Status:       sla.CleanCell(cell(row, idx.status)),
			RawOrderDate: sla.CleanCell(cell(row, idx.orderDate)),
			RawEndTime:   sla.CleanCell(cell(row, idx.endTime)),
		}

		if t, ok := sla.ParseTimestamp(rec.RawOrderDate); ok {
			rec.OrderDate = &t
		}
		if t, ok := sla.ParseTimestamp(rec.RawEndTime); ok {
			rec.EndTime = &t
		}

		if rec.OrderDate == nil || rec.EndTime == nil {
			badTimestamps++
			d.logger.Debug("unparseable timestamp",
				"row", rec.Row,
				"store", rec.Store,
				"orderDate", rec.RawOrderDate,
				"endTime", rec.RawEndTime,
			)
		}

		orders = append(orders, rec)
	}

	if badTimestamps > 0 {
		d.logger.Info("rows with unparseable timestamps",
			"source", table.Source,
			"count", badTimestamps,
		)
	}

	return orders, nil
}

// cell returns row[i], or "" when the row is shorter than the header.
// Tables built by the readers are always full width; hand-built ones may not be.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Decode converts a table using a Decoder with default options.
func Decode(table *model.Table) ([]model.OrderRecord, error) {
	return NewDecoder().Decode(table)
}
