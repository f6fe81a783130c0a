package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/slareport/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the state
// accumulated by previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state (allow-list, cutoff hour)
// 2. It provides a Name() method for logging and debugging
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the state to modify.
	Do(ctx context.Context, state *State) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// State is the working data of one report run.
type State struct {
	// Date is the business date the run filters to.
	Date model.Date

	// Orders holds the records still in play. Filter steps narrow it.
	Orders []model.OrderRecord

	// Classified is filled by the classify step.
	Classified []model.ClassifiedOrder

	// Result is the report under construction. Its Stats are updated by
	// every filter; its rows are filled by the aggregate step.
	Result *model.ReportResult

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string
}

// NewState creates the state for a run over orders on date.
// The orders slice is copied, so the caller's slice is never modified.
func NewState(orders []model.OrderRecord, date model.Date) *State {
	pending := make([]model.OrderRecord, len(orders))
	copy(pending, orders)

	return &State{
		Date:   date,
		Orders: pending,
		Result: &model.ReportResult{
			Date:   date,
			Stores: []model.StoreSummary{},
			GrandTotal: model.StoreSummary{
				Store: model.GrandTotalLabel,
			},
			Stats: model.FilterStats{RowsRead: len(orders)},
		},
	}
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged, and the first error is
// still returned once every step has run.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step; steps themselves are short.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	var firstErr error

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"date", state.Date.String(),
			"orders", len(state.Orders),
		)

		if err := step.Do(ctx, state); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)

			if !p.continueOnError {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"orders", len(state.Orders),
			)
		}

		state.PerformedSteps = append(state.PerformedSteps, step.Name())
	}

	return firstErr
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
