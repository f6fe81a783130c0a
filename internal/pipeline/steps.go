package pipeline

import (
	"context"
	"errors"

	"github.com/nao1215/slareport/internal/model"
	"github.com/nao1215/slareport/internal/sla"
)

// errNotClassified is returned by the aggregate step when it runs before classify.
var errNotClassified = errors.New("aggregate step requires classified orders")

// filterOrders keeps the orders for which keep returns true and
// returns how many were dropped.
func filterOrders(state *State, keep func(model.OrderRecord) bool) int {
	kept := state.Orders[:0]
	for _, o := range state.Orders {
		if keep(o) {
			kept = append(kept, o)
		}
	}
	dropped := len(state.Orders) - len(kept)
	state.Orders = kept
	return dropped
}

// StoreFilterStep drops orders whose store is not allow-listed.
// It runs first because it is the cheapest check.
type StoreFilterStep struct {
	stores *sla.StoreSet
}

// NewStoreFilterStep creates a store filter for the given allow-list.
func NewStoreFilterStep(stores *sla.StoreSet) *StoreFilterStep {
	return &StoreFilterStep{stores: stores}
}

// Name returns the step name.
func (s *StoreFilterStep) Name() string {
	return "filter_store"
}

// Do executes the store filter.
func (s *StoreFilterStep) Do(_ context.Context, state *State) error {
	state.Result.Stats.DroppedStore += filterOrders(state, func(o model.OrderRecord) bool {
		return s.stores.Contains(o.Store)
	})
	return nil
}

// StatusFilterStep drops orders whose status is not "delivered", ignoring case.
type StatusFilterStep struct{}

// NewStatusFilterStep creates a status filter.
func NewStatusFilterStep() *StatusFilterStep {
	return &StatusFilterStep{}
}

// Name returns the step name.
func (s *StatusFilterStep) Name() string {
	return "filter_status"
}

// Do executes the status filter.
func (s *StatusFilterStep) Do(_ context.Context, state *State) error {
	state.Result.Stats.DroppedStatus += filterOrders(state, func(o model.OrderRecord) bool {
		return sla.IsDelivered(o.Status)
	})
	return nil
}

// DateFilterStep keeps orders completed on the run's business date.
// Orders without a parseable completion timestamp cannot match and are dropped.
type DateFilterStep struct{}

// NewDateFilterStep creates a completion date filter.
func NewDateFilterStep() *DateFilterStep {
	return &DateFilterStep{}
}

// Name returns the step name.
func (s *DateFilterStep) Name() string {
	return "filter_date"
}

// Do executes the date filter.
func (s *DateFilterStep) Do(_ context.Context, state *State) error {
	state.Result.Stats.DroppedDate += filterOrders(state, func(o model.OrderRecord) bool {
		return o.EndTime != nil && model.DateOf(*o.EndTime) == state.Date
	})
	return nil
}

// ClassifyStep derives delivery type, TAT and SLA status for every order.
type ClassifyStep struct {
	cutoffHour int
}

// NewClassifyStep creates a classify step using cutoffHour as the Quick cutoff.
func NewClassifyStep(cutoffHour int) *ClassifyStep {
	return &ClassifyStep{cutoffHour: cutoffHour}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classification.
func (s *ClassifyStep) Do(_ context.Context, state *State) error {
	classified := make([]model.ClassifiedOrder, 0, len(state.Orders))
	for _, o := range state.Orders {
		c := sla.Classify(o, s.cutoffHour)
		if c.Status == model.SLAUnknown {
			state.Result.Stats.Unclassified++
		} else {
			state.Result.Stats.Classified++
		}
		classified = append(classified, model.ClassifiedOrder{
			Order:          o,
			Classification: c,
		})
	}
	state.Classified = classified
	state.Result.Orders = classified
	return nil
}

// AggregateStep groups classified orders by store and synthesizes the grand total.
// Store rows follow allow-list order so output is deterministic.
type AggregateStep struct {
	stores *sla.StoreSet
}

// NewAggregateStep creates an aggregate step ordering rows by the allow-list.
func NewAggregateStep(stores *sla.StoreSet) *AggregateStep {
	return &AggregateStep{stores: stores}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the aggregation.
func (s *AggregateStep) Do(_ context.Context, state *State) error {
	if state.Classified == nil && len(state.Orders) > 0 {
		return errNotClassified
	}

	groups := make([]*model.StoreSummary, s.stores.Len())
	for _, co := range state.Classified {
		pos := s.stores.Position(co.Order.Store)
		if pos < 0 {
			continue
		}
		g := groups[pos]
		if g == nil {
			g = &model.StoreSummary{Store: co.Order.Store}
			groups[pos] = g
		}
		switch co.Classification.Status {
		case model.SLAMet:
			g.Met++
		case model.SLABreach:
			g.Breach++
		default:
			g.Unclassified++
		}
	}

	total := model.StoreSummary{Store: model.GrandTotalLabel}
	rows := make([]model.StoreSummary, 0, len(groups))
	for _, g := range groups {
		if g == nil {
			continue
		}
		row := sla.Summarize(*g)
		rows = append(rows, row)

		total.Met += row.Met
		total.Breach += row.Breach
		total.Unclassified += row.Unclassified
	}

	// Grand total percentages come from the summed counts, never from
	// averaging the store percentages.
	state.Result.Stores = rows
	state.Result.GrandTotal = sla.Summarize(total)
	return nil
}

// DefaultPipelineConfig holds the configuration for DefaultPipeline.
type DefaultPipelineConfig struct {
	// Stores is the allow-list in report order.
	Stores []string

	// CutoffHour separates Quick from Non Quick orders.
	CutoffHour int
}

// DefaultPipelineOption configures DefaultPipeline.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineStores overrides the store allow-list.
func WithPipelineStores(stores []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Stores = stores
	}
}

// WithPipelineCutoffHour overrides the Quick cutoff hour.
func WithPipelineCutoffHour(hour int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.CutoffHour = hour
	}
}

// DefaultPipeline creates a pipeline with all report steps configured.
// Filters run cheapest first: store membership, then status folding,
// then timestamp date comparison.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts config options (WithPipelineStores, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Stores:     sla.DefaultStores,
		CutoffHour: sla.DefaultCutoffHour,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	stores := sla.NewStoreSet(cfg.Stores)

	p.AddSteps(
		NewStoreFilterStep(stores),
		NewStatusFilterStep(),
		NewDateFilterStep(),
		NewClassifyStep(cfg.CutoffHour),
		NewAggregateStep(stores),
	)

	return p
}
