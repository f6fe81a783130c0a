package sla

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/nao1215/slareport/internal/model"
)

// DefaultCutoffHour separates Quick orders (placed before it) from
// Non Quick orders (placed at or after it).
const DefaultCutoffHour = 15

// deliveredStatus is the case-folded status that counts as delivered.
const deliveredStatus = "delivered"

// statusFolder folds status text for caseless comparison.
// cases.Caser is stateful, so callers get a fresh one per comparison.
func statusFolder() cases.Caser {
	return cases.Fold()
}

// IsDelivered reports whether a free-text order status means "Delivered",
// ignoring case and surrounding whitespace.
func IsDelivered(status string) bool {
	return statusFolder().String(strings.TrimSpace(status)) == deliveredStatus
}

// DeliveryTypeOf classifies an order timestamp as Quick or Non Quick.
func DeliveryTypeOf(orderTime time.Time, cutoffHour int) model.DeliveryType {
	if orderTime.Hour() < cutoffHour {
		return model.DeliveryQuick
	}
	return model.DeliveryNonQuick
}

// TATOf returns the turn-around-time deadline for an order placed at orderTime:
// 23:59:59 the same day before the cutoff, 23:59:59 the next day otherwise.
func TATOf(orderTime time.Time, cutoffHour int) time.Time {
	y, m, d := orderTime.Date()
	if orderTime.Hour() >= cutoffHour {
		d++
	}
	// time.Date normalizes day overflow into the next month or year.
	return time.Date(y, m, d, 23, 59, 59, 0, orderTime.Location())
}

// Classify derives the delivery type, TAT and SLA status of an order.
// An order with a missing order timestamp is classified NA with a zero TAT;
// an order with a missing completion timestamp gets a TAT but an NA status.
func Classify(order model.OrderRecord, cutoffHour int) model.Classification {
	if order.OrderDate == nil {
		return model.Classification{
			DeliveryType: model.DeliveryUnknown,
			Status:       model.SLAUnknown,
		}
	}

	c := model.Classification{
		DeliveryType: DeliveryTypeOf(*order.OrderDate, cutoffHour),
		TAT:          TATOf(*order.OrderDate, cutoffHour),
	}

	switch {
	case order.EndTime == nil:
		c.Status = model.SLAUnknown
	case order.EndTime.After(c.TAT):
		c.Status = model.SLABreach
	default:
		c.Status = model.SLAMet
	}
	return c
}

// Percentages returns the met and breach percentages for the given counts.
// The met percentage is rounded half to even; the breach percentage is
// derived by subtraction so the pair always sums to 100. A zero total
// yields 0 and 0.
func Percentages(met, total int) (metPercent, breachPercent int) {
	if total <= 0 {
		return 0, 0
	}
	ratio := decimal.NewFromInt(int64(met)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total)))
	metPercent = int(ratio.RoundBank(0).IntPart())
	return metPercent, 100 - metPercent
}

// Summarize fills Total and the percentages of a summary from its counts.
func Summarize(s model.StoreSummary) model.StoreSummary {
	s.Total = s.Met + s.Breach
	s.MetPercent, s.BreachPercent = Percentages(s.Met, s.Total)
	return s
}
