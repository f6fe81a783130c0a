package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/slareport/internal/ingest"
	"github.com/nao1215/slareport/internal/model"
	"github.com/nao1215/slareport/internal/pipeline"
	"github.com/nao1215/slareport/internal/sla"
)

// Engine produces SLA reports from delivery orders.
type Engine struct {
	stores     []string
	cutoffHour int
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStores sets the store allow-list. Report rows follow its order.
func WithStores(stores []string) Option {
	return func(e *Engine) {
		if len(stores) > 0 {
			e.stores = stores
		}
	}
}

// WithCutoffHour sets the hour that separates Quick from Non Quick orders.
func WithCutoffHour(hour int) Option {
	return func(e *Engine) {
		e.cutoffHour = hour
	}
}

// WithLogger sets the logger for the engine and the steps it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine with the default allow-list and cutoff hour.
func New(opts ...Option) *Engine {
	e := &Engine{
		stores:     sla.DefaultStores,
		cutoffHour: sla.DefaultCutoffHour,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateReport filters orders to date and the allow-list, classifies them
// and aggregates per-store and grand total rows.
// The orders slice is not modified.
func (e *Engine) GenerateReport(ctx context.Context, orders []model.OrderRecord, date model.Date) (*model.ReportResult, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is empty", sla.ErrInvalidDate)
	}

	p := pipeline.DefaultPipeline(
		[]pipeline.Option{pipeline.WithLogger(e.logger)},
		pipeline.WithPipelineStores(e.stores),
		pipeline.WithPipelineCutoffHour(e.cutoffHour),
	)

	state := pipeline.NewState(orders, date)
	if err := p.Execute(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	stats := state.Result.Stats
	e.logger.Debug("report generated",
		"date", date.String(),
		"rowsRead", stats.RowsRead,
		"droppedStore", stats.DroppedStore,
		"droppedStatus", stats.DroppedStatus,
		"droppedDate", stats.DroppedDate,
		"classified", stats.Classified,
		"unclassified", stats.Unclassified,
	)

	return state.Result, nil
}

// GenerateReportFromTable parses dateString, decodes table and generates
// the report. A malformed date is reported before the table is inspected,
// so it wins over schema errors.
func (e *Engine) GenerateReportFromTable(ctx context.Context, table *model.Table, dateString string) (*model.ReportResult, error) {
	date, err := sla.ParseTargetDate(dateString)
	if err != nil {
		return nil, err
	}

	orders, err := ingest.NewDecoder(ingest.WithDecoderLogger(e.logger)).Decode(table)
	if err != nil {
		return nil, err
	}

	return e.GenerateReport(ctx, orders, date)
}

// GenerateReport runs an Engine with default options.
func GenerateReport(ctx context.Context, orders []model.OrderRecord, date model.Date) (*model.ReportResult, error) {
	return New().GenerateReport(ctx, orders, date)
}
