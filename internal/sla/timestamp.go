package sla

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/slareport/internal/model"
)

// ErrInvalidDate is returned when the target date is not a valid DD/MM/YYYY date.
var ErrInvalidDate = errors.New("invalid date format, expected DD/MM/YYYY")

// timestampLayouts are tried in order. Day comes first in every layout.
// Single-digit layout elements also accept zero-padded input, so
// "2/1/2006" matches both "05/03/2025" and "5/3/2025".
var timestampLayouts = []string{
	"2/1/2006 3:04 PM",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006 3:04 PM",
	"2-1-2006 15:04",
}

// dateLayouts are accepted for the target date.
var dateLayouts = []string{
	"2/1/2006",
}

// ParseTimestamp parses an export timestamp such as "05/03/2025 02:30 PM".
// It reports false when the value cannot be parsed; the caller treats that
// as a missing timestamp, never as an error.
func ParseTimestamp(s string) (time.Time, bool) {
	s = normalizeSpaces(s)
	if s == "" {
		return time.Time{}, false
	}
	// The PM layout element only accepts upper case.
	s = strings.ToUpper(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTargetDate parses the caller-supplied business date in DD/MM/YYYY order.
// Malformed input returns an error wrapping ErrInvalidDate.
func ParseTargetDate(s string) (model.Date, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.Date{}, fmt.Errorf("%w: date is empty", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return model.DateOf(t), nil
		}
	}
	return model.Date{}, fmt.Errorf("%w: got %q", ErrInvalidDate, s)
}

// normalizeSpaces trims the value and collapses runs of whitespace.
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
