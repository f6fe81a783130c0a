package sla

import (
	"errors"
	"testing"
	"time"

	"github.com/nao1215/slareport/internal/model"
)

// TestParseTimestamp tests day-first timestamp parsing.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"12-hour PM", "05/03/2025 02:30 PM", time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)},
		{"12-hour AM", "05/03/2025 09:05 AM", time.Date(2025, time.March, 5, 9, 5, 0, 0, time.UTC)},
		{"midnight", "05/03/2025 12:00 AM", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{"noon", "05/03/2025 12:00 PM", time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)},
		{"lower case marker", "05/03/2025 02:30 pm", time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)},
		{"no leading zeros", "5/3/2025 2:30 PM", time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)},
		{"with seconds", "05/03/2025 02:30:45 PM", time.Date(2025, time.March, 5, 14, 30, 45, 0, time.UTC)},
		{"24-hour clock", "05/03/2025 14:30", time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)},
		{"extra whitespace", "  05/03/2025   02:30 PM ", time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)},
		{"day greater than twelve", "25/12/2024 11:59 PM", time.Date(2024, time.December, 25, 23, 59, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseTimestamp(tc.input)
			if !ok {
				t.Fatalf("ParseTimestamp(%q) failed", tc.input)
			}
			if !got.Equal(tc.expected) {
				t.Errorf("ParseTimestamp(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"", "not a date", "2025-03-05T14:30:00", "32/01/2025 01:00 PM", "05/13/2025 01:00 PM"} {
			if _, ok := ParseTimestamp(input); ok {
				t.Errorf("expected ParseTimestamp(%q) to fail", input)
			}
		}
	})
}

// TestParseTargetDate tests parsing of the caller-supplied business date.
func TestParseTargetDate(t *testing.T) {
	t.Parallel()

	t.Run("parses DD/MM/YYYY", func(t *testing.T) {
		t.Parallel()
		got, err := ParseTargetDate("05/03/2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := model.Date{Year: 2025, Month: time.March, Day: 5}
		if got != expected {
			t.Errorf("got %v, expected %v", got, expected)
		}
	})

	t.Run("accepts missing leading zeros", func(t *testing.T) {
		t.Parallel()
		got, err := ParseTargetDate(" 5/3/2025 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "05/03/2025" {
			t.Errorf("got %s, expected 05/03/2025", got)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"2025-13-45", "", "31/02/2025", "05/03/25", "yesterday"} {
			_, err := ParseTargetDate(input)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParseTargetDate(%q): expected ErrInvalidDate, got %v", input, err)
			}
		}
	})

	t.Run("error message names the expected format", func(t *testing.T) {
		t.Parallel()
		_, err := ParseTargetDate("2025-13-45")
		if err == nil || err.Error() != `invalid date format, expected DD/MM/YYYY: got "2025-13-45"` {
			t.Errorf("unexpected error message: %v", err)
		}
	})
}
