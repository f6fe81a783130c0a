package sla

import (
	"testing"
	"time"

	"github.com/nao1215/slareport/internal/model"
)

func ts(year int, month time.Month, day, hour, minute, sec int) *time.Time {
	t := time.Date(year, month, day, hour, minute, sec, 0, time.UTC)
	return &t
}

// TestIsDelivered tests the case-insensitive status check.
func TestIsDelivered(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status   string
		expected bool
	}{
		{"Delivered", true},
		{"delivered", true},
		{"DELIVERED", true},
		{"  Delivered ", true},
		{"Cancelled", false},
		{"Delivered Late", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsDelivered(tc.status); got != tc.expected {
			t.Errorf("IsDelivered(%q) = %v, expected %v", tc.status, got, tc.expected)
		}
	}
}

// TestDeliveryTypeOf tests the Quick / Non Quick boundary.
func TestDeliveryTypeOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		at       time.Time
		expected model.DeliveryType
	}{
		{"midnight is quick", *ts(2025, 3, 5, 0, 0, 0), model.DeliveryQuick},
		{"14:59 is quick", *ts(2025, 3, 5, 14, 59, 0), model.DeliveryQuick},
		{"15:00 is non quick", *ts(2025, 3, 5, 15, 0, 0), model.DeliveryNonQuick},
		{"23:59 is non quick", *ts(2025, 3, 5, 23, 59, 0), model.DeliveryNonQuick},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DeliveryTypeOf(tc.at, DefaultCutoffHour); got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestTATOf tests the deadline computation.
func TestTATOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		at       time.Time
		expected time.Time
	}{
		{"before cutoff is same day", *ts(2025, 3, 5, 9, 0, 0), *ts(2025, 3, 5, 23, 59, 59)},
		{"at cutoff is next day", *ts(2025, 3, 5, 15, 0, 0), *ts(2025, 3, 6, 23, 59, 59)},
		{"month rollover", *ts(2025, 2, 28, 18, 0, 0), *ts(2025, 3, 1, 23, 59, 59)},
		{"year rollover", *ts(2024, 12, 31, 20, 0, 0), *ts(2025, 1, 1, 23, 59, 59)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TATOf(tc.at, DefaultCutoffHour); !got.Equal(tc.expected) {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestClassify tests SLA classification of single orders.
func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("completion equal to TAT is met", func(t *testing.T) {
		t.Parallel()
		order := model.OrderRecord{
			OrderDate: ts(2025, 3, 5, 10, 0, 0),
			EndTime:   ts(2025, 3, 5, 23, 59, 59),
		}
		c := Classify(order, DefaultCutoffHour)
		if c.Status != model.SLAMet {
			t.Errorf("expected Met, got %q", c.Status)
		}
		if c.DeliveryType != model.DeliveryQuick {
			t.Errorf("expected Quick, got %q", c.DeliveryType)
		}
	})

	t.Run("completion one second after TAT is breach", func(t *testing.T) {
		t.Parallel()
		order := model.OrderRecord{
			OrderDate: ts(2025, 3, 5, 10, 0, 0),
			EndTime:   ts(2025, 3, 6, 0, 0, 0),
		}
		if c := Classify(order, DefaultCutoffHour); c.Status != model.SLABreach {
			t.Errorf("expected Breach, got %q", c.Status)
		}
	})

	t.Run("non quick order delivered next day is met", func(t *testing.T) {
		t.Parallel()
		order := model.OrderRecord{
			OrderDate: ts(2025, 3, 4, 16, 0, 0),
			EndTime:   ts(2025, 3, 5, 11, 0, 0),
		}
		c := Classify(order, DefaultCutoffHour)
		if c.Status != model.SLAMet {
			t.Errorf("expected Met, got %q", c.Status)
		}
		if c.DeliveryType != model.DeliveryNonQuick {
			t.Errorf("expected Non Quick, got %q", c.DeliveryType)
		}
	})

	t.Run("missing order date is NA", func(t *testing.T) {
		t.Parallel()
		order := model.OrderRecord{EndTime: ts(2025, 3, 5, 11, 0, 0)}
		c := Classify(order, DefaultCutoffHour)
		if c.Status != model.SLAUnknown || c.DeliveryType != model.DeliveryUnknown {
			t.Errorf("expected NA classification, got %+v", c)
		}
		if !c.TAT.IsZero() {
			t.Errorf("expected zero TAT, got %v", c.TAT)
		}
	})

	t.Run("missing end time is NA", func(t *testing.T) {
		t.Parallel()
		order := model.OrderRecord{OrderDate: ts(2025, 3, 5, 11, 0, 0)}
		if c := Classify(order, DefaultCutoffHour); c.Status != model.SLAUnknown {
			t.Errorf("expected NA, got %q", c.Status)
		}
	})
}

// TestPercentages tests rounding and the 100% invariant.
func TestPercentages(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		met, total     int
		expectedMet    int
		expectedBreach int
	}{
		{2, 3, 67, 33},
		{1, 3, 33, 67},
		{0, 0, 0, 0},
		{0, 5, 0, 100},
		{5, 5, 100, 0},
		{1, 8, 12, 88},   // 12.5 rounds half to even
		{3, 8, 38, 62},   // 37.5 rounds half to even
		{1, 200, 0, 100}, // 0.5 rounds half to even
		{3, 200, 2, 98},  // 1.5 rounds half to even
	}

	for _, tc := range testCases {
		met, breach := Percentages(tc.met, tc.total)
		if met != tc.expectedMet || breach != tc.expectedBreach {
			t.Errorf("Percentages(%d, %d) = (%d, %d), expected (%d, %d)",
				tc.met, tc.total, met, breach, tc.expectedMet, tc.expectedBreach)
		}
	}

	t.Run("met plus breach is always 100", func(t *testing.T) {
		t.Parallel()
		for total := 1; total <= 50; total++ {
			for met := 0; met <= total; met++ {
				m, b := Percentages(met, total)
				if m+b != 100 {
					t.Fatalf("Percentages(%d, %d) = (%d, %d) does not sum to 100", met, total, m, b)
				}
			}
		}
	})
}

// TestStoreSet tests allow-list membership and ordering.
func TestStoreSet(t *testing.T) {
	t.Parallel()

	set := NewStoreSet(DefaultStores)

	if set.Len() != 8 {
		t.Errorf("expected 8 stores, got %d", set.Len())
	}
	if !set.Contains("BLR_koramangala") {
		t.Error("expected BLR_koramangala to be allow-listed")
	}
	if set.Contains("blr_koramangala") {
		t.Error("expected matching to be case-sensitive")
	}
	if set.Position("PUN_koregaon-park") != 7 {
		t.Errorf("expected PUN_koregaon-park at position 7, got %d", set.Position("PUN_koregaon-park"))
	}
	if set.Position("unknown") != -1 {
		t.Error("expected -1 for unknown store")
	}

	dup := NewStoreSet([]string{"A", "B", "A"})
	if dup.Len() != 2 || dup.Stores()[1] != "B" {
		t.Errorf("expected duplicates to be ignored, got %v", dup.Stores())
	}
}
