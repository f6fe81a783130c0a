package model

import (
	"fmt"
	"time"
)

// DeliveryType classifies an order by the time of day it was placed.
// It is independent of the SLA outcome.
type DeliveryType string

const (
	// DeliveryQuick is an order placed before the cutoff hour.
	DeliveryQuick DeliveryType = "Quick"

	// DeliveryNonQuick is an order placed at or after the cutoff hour.
	DeliveryNonQuick DeliveryType = "Non Quick"

	// DeliveryUnknown is used when the order timestamp could not be parsed.
	DeliveryUnknown DeliveryType = "NA"
)

// SLAStatus is the outcome of comparing the completion time against the TAT.
type SLAStatus string

const (
	// SLAMet means the order was completed at or before its TAT.
	SLAMet SLAStatus = "Met"

	// SLABreach means the order was completed strictly after its TAT.
	SLABreach SLAStatus = "Breach"

	// SLAUnknown means one of the timestamps was missing, so the order
	// cannot be judged. These orders never count towards percentages.
	SLAUnknown SLAStatus = "NA"
)

// Date is a calendar date without a time component.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as DD/MM/YYYY, the format used by the exports.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// MarshalText implements encoding.TextMarshaler so dates appear as DD/MM/YYYY in JSON.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for DD/MM/YYYY text.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse("2/1/2006", string(text))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", text, err)
	}
	*d = DateOf(t)
	return nil
}

// OrderRecord is one row of the delivery export after cleanup and parsing.
//
// Design decision: Timestamps are pointers so that a cell which failed to
// parse is represented explicitly (nil) instead of as the zero time. A nil
// timestamp is never an error; it flows through as an NA classification.
type OrderRecord struct {
	// Row is the 1-based line number of the record in the source file,
	// counting the header as line 1. Used only for diagnostics.
	Row int `json:"row"`

	// OrderDate is when the order was placed ("Order Date").
	OrderDate *time.Time `json:"order_date,omitempty"`

	// EndTime is when the delivery was completed ("End Time (Actual)").
	EndTime *time.Time `json:"end_time,omitempty"`

	// Store is the dark store code ("Order Dark Store").
	Store string `json:"store"`

	// Status is the free-text order status ("Order Status").
	Status string `json:"status"`

	// RawOrderDate and RawEndTime keep the cleaned cell text so that
	// unparseable values can still be shown in diagnostics.
	RawOrderDate string `json:"raw_order_date,omitempty"`
	RawEndTime   string `json:"raw_end_time,omitempty"`
}

// Classification is the SLA outcome derived for one order.
type Classification struct {
	// DeliveryType is Quick / Non Quick / NA.
	DeliveryType DeliveryType `json:"delivery_type"`

	// TAT is the deadline the order had to be completed by.
	// It is the zero time when the order timestamp is missing.
	TAT time.Time `json:"tat"`

	// Status is Met / Breach / NA.
	Status SLAStatus `json:"sla_status"`
}

// ClassifiedOrder pairs an order with its classification.
type ClassifiedOrder struct {
	Order          OrderRecord    `json:"order"`
	Classification Classification `json:"classification"`
}
