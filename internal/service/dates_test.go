package service_test

import (
	"testing"
	"time"

	"github.com/carteira-app/carteira-backend/internal/service"
)

// TestParseDisplayDate tests the localized display-date parser.
//
// WHY: Ledger ordering hangs entirely on this parser. It must read both the
// Portuguese month abbreviations the frontend writes and the English ones
// found in older exports, and degrade malformed input to the zero time
// instead of failing.
func TestParseDisplayDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"portuguese month", "02 jan 2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"portuguese fev", "15 fev 2024", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"portuguese dez", "31 dez 2023", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"english month accepted", "15 feb 2024", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"uppercase month", "10 MAI 2025", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"month with trailing dot", "10 mar. 2025", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  05 out 2024  ", time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)},
		{"empty string", "", time.Time{}},
		{"garbage", "not a date", time.Time{}},
		{"unknown month", "02 xyz 2025", time.Time{}},
		{"missing year", "02 jan", time.Time{}},
		{"day out of range", "32 jan 2025", time.Time{}},
		{"two digit year", "02 jan 25", time.Time{}},
		{"iso format rejected", "2025-01-02", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ParseDisplayDate(tt.input)
			if !got.Equal(tt.expected) {
				t.Errorf("ParseDisplayDate(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFormatDisplayDate tests rendering back to the display format.
func TestFormatDisplayDate(t *testing.T) {
	t.Run("renders portuguese abbreviation", func(t *testing.T) {
		got := service.FormatDisplayDate(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
		if got != "10 fev 2025" {
			t.Errorf("Expected %q, got %q", "10 fev 2025", got)
		}
	})

	t.Run("round-trips through the parser", func(t *testing.T) {
		original := time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC)
		parsed := service.ParseDisplayDate(service.FormatDisplayDate(original))
		if !parsed.Equal(original) {
			t.Errorf("Round trip changed the date: %v -> %v", original, parsed)
		}
	})
}
