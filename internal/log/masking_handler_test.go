package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestMaskingHandler_MasksSensitiveKeys tests that sensitive keys are masked.
func TestMaskingHandler_MasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "phone key is masked", key: "phone", value: "12345", wantMask: true},
		{name: "Email key (mixed case) is masked", key: "Email", value: "someone", wantMask: true},
		{name: "customer name is masked", key: "customer_name", value: "Asha", wantMask: true},
		{name: "compound customerPhone is masked", key: "customerPhone", value: "x", wantMask: true},
		{name: "delivery address is masked", key: "deliveryAddress", value: "12 MG Road", wantMask: true},
		{name: "authorization is masked", key: "authorization", value: "Basic abc", wantMask: true},
		{name: "password is masked", key: "password", value: "hunter2", wantMask: true},
		{name: "store is not masked", key: "store", value: "BLR_koramangala", wantMask: false},
		{name: "row is not masked", key: "row", value: "12", wantMask: false},
		{name: "order date is not masked", key: "orderDate", value: "5/3/2025 10:00 AM", wantMask: false},
		{name: "sheet name is not masked", key: "sheetName", value: "Orders", wantMask: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test", tt.key, tt.value)

			output := buf.String()
			masked := strings.Contains(output, MaskValue)
			if masked != tt.wantMask {
				t.Errorf("masked = %v, want %v; output: %s", masked, tt.wantMask, output)
			}
			if tt.wantMask && strings.Contains(output, tt.value) {
				t.Errorf("value %q leaked: %s", tt.value, output)
			}
		})
	}
}

// TestMaskingHandler_MasksSensitiveValues tests pattern-based masking.
func TestMaskingHandler_MasksSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		wantMask bool
	}{
		{name: "email address", value: "someone@example.com", wantMask: true},
		{name: "ten digit mobile", value: "9876543210", wantMask: true},
		{name: "mobile with country code", value: "+91 9876543210", wantMask: true},
		{name: "bearer token", value: "Bearer abc.def", wantMask: true},
		{name: "timestamp", value: "5/3/2025 10:00 AM", wantMask: false},
		{name: "store code", value: "KOL-Topsia", wantMask: false},
		{name: "short number", value: "2025", wantMask: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test", "value", tt.value)

			if got := strings.Contains(buf.String(), MaskValue); got != tt.wantMask {
				t.Errorf("masked = %v, want %v; output: %s", got, tt.wantMask, buf.String())
			}
		})
	}
}

// TestMaskingHandler_Groups tests that grouped attributes are masked.
func TestMaskingHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewMaskingHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test", slog.Group("order", slog.String("phone", "9876543210"), slog.Int("row", 3)))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	order, ok := decoded["order"].(map[string]any)
	if !ok {
		t.Fatalf("missing group: %v", decoded)
	}
	if order["phone"] != MaskValue {
		t.Errorf("expected masked phone, got %v", order["phone"])
	}
	if order["row"] != float64(3) {
		t.Errorf("expected row 3, got %v", order["row"])
	}
}

// TestMaskingHandler_WithAttrs tests that attributes added via With are masked.
func TestMaskingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil))).
		With("email", "someone@example.com").
		WithGroup("req")
	logger.Info("test", "path", "/report")

	output := buf.String()
	if strings.Contains(output, "someone@example.com") {
		t.Errorf("email leaked: %s", output)
	}
	if !strings.Contains(output, "req.path=/report") {
		t.Errorf("expected grouped attribute: %s", output)
	}
}

// TestNewMaskingHandler_NilUsesDefault tests the nil fallback.
func TestNewMaskingHandler_NilUsesDefault(t *testing.T) {
	t.Parallel()

	if h := NewMaskingHandler(nil); h.handler == nil {
		t.Error("expected default handler")
	}
}

// TestNewLogger tests log level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewLogger(&buf, true).Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("info message")
		logger.Warn("warn message")
		if strings.Contains(buf.String(), "info message") {
			t.Error("info should be suppressed")
		}
		if !strings.Contains(buf.String(), "warn message") {
			t.Error("warn should be logged")
		}
	})

	t.Run("json logger emits JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewJSONLogger(&buf, false).Warn("warn message", "phone", "9876543210")

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["phone"] != MaskValue {
			t.Errorf("expected masked phone, got %v", decoded["phone"])
		}
	})
}
