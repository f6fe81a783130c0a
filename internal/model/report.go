package model

// GrandTotalLabel is the store label of the final aggregated row.
const GrandTotalLabel = "Grand Total"

// StoreSummary is one aggregated row of the SLA report.
//
// Percentages are integers; BreachPercent is derived as 100 - MetPercent so
// the two always add up to 100 when Total > 0. When Total is 0 both are 0.
type StoreSummary struct {
	// Store is the dark store code, or GrandTotalLabel for the final row.
	Store string `json:"store"`

	// Met is the number of orders completed at or before their TAT.
	Met int `json:"sla_met_count"`

	// Breach is the number of orders completed after their TAT.
	Breach int `json:"sla_breach_count"`

	// Total is Met + Breach. Unclassified orders are not included.
	Total int `json:"total_delivered_orders"`

	// MetPercent is round(Met / Total * 100), half to even.
	MetPercent int `json:"sla_met_percent"`

	// BreachPercent is 100 - MetPercent.
	BreachPercent int `json:"sla_breach_percent"`

	// Unclassified counts delivered orders on the target date whose order
	// timestamp could not be parsed. They are reported here so they do not
	// silently vanish, but they never enter Total or the percentages.
	Unclassified int `json:"unclassified_count"`
}

// IsGrandTotal reports whether s is the synthesized grand total row.
func (s StoreSummary) IsGrandTotal() bool {
	return s.Store == GrandTotalLabel
}

// FilterStats records how many rows each stage of the report kept or dropped.
// It is the observable trace of the filtering, including NA rows.
type FilterStats struct {
	// RowsRead is the number of order records handed to the engine.
	RowsRead int `json:"rows_read"`

	// DroppedStore counts rows whose store is not in the allow-list.
	DroppedStore int `json:"dropped_store"`

	// DroppedStatus counts rows whose status is not "delivered".
	DroppedStatus int `json:"dropped_status"`

	// DroppedDate counts rows completed on another date, or whose
	// completion timestamp could not be parsed.
	DroppedDate int `json:"dropped_date"`

	// Classified counts rows that ended up as Met or Breach.
	Classified int `json:"classified"`

	// Unclassified counts rows that ended up as NA.
	Unclassified int `json:"unclassified"`
}

// ReportResult is the output of one report invocation.
// It exists only for the duration of one request and is never mutated
// after the engine returns it.
type ReportResult struct {
	// Date is the business date the report was filtered to.
	Date Date `json:"date"`

	// Stores holds one row per store that had surviving orders,
	// in allow-list order.
	Stores []StoreSummary `json:"stores"`

	// GrandTotal is the sum of all store rows with recomputed percentages.
	GrandTotal StoreSummary `json:"grand_total"`

	// Stats is the filtering trace.
	Stats FilterStats `json:"stats"`

	// Orders is the detailed, non-aggregated view of every order that
	// survived the filters, including NA ones.
	Orders []ClassifiedOrder `json:"orders,omitempty"`
}

// Rows returns the store rows followed by the grand total row.
// This is the tabular shape every writer renders.
func (r *ReportResult) Rows() []StoreSummary {
	rows := make([]StoreSummary, 0, len(r.Stores)+1)
	rows = append(rows, r.Stores...)
	rows = append(rows, r.GrandTotal)
	return rows
}

// IsEmpty reports whether no order survived the filters.
func (r *ReportResult) IsEmpty() bool {
	return len(r.Stores) == 0
}

// UnclassifiedOrders returns the orders whose SLA status is NA.
func (r *ReportResult) UnclassifiedOrders() []ClassifiedOrder {
	var out []ClassifiedOrder
	for _, o := range r.Orders {
		if o.Classification.Status == SLAUnknown {
			out = append(out, o)
		}
	}
	return out
}
