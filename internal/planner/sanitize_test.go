package planner

import (
	"math"
	"testing"
	"time"
)

// TestSafeNumber проверяет приведение нечисловых значений к нулю.
func TestSafeNumber(t *testing.T) {
	if got := SafeNumber(math.NaN()); got != 0 {
		t.Fatalf("expected 0 for NaN, got %v", got)
	}
	if got := SafeNumber(math.Inf(1)); got != 0 {
		t.Fatalf("expected 0 for +Inf, got %v", got)
	}
	if got := SafeNumber(math.Inf(-1)); got != 0 {
		t.Fatalf("expected 0 for -Inf, got %v", got)
	}
	if got := SafeNumber(42.5); got != 42.5 {
		t.Fatalf("expected 42.5, got %v", got)
	}
}

// TestParseAmount проверяет разбор денежных строк из форм.
func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		"abc":    0,
		"NaN":    0,
		"  150 ": 150,
		"12.75":  12.75,
		"-3":     -3,
	}

	for raw, want := range cases {
		if got := ParseAmount(raw); got != want {
			t.Fatalf("ParseAmount(%q): expected %v, got %v", raw, want, got)
		}
	}
}

// TestClampUnit проверяет границы и идемпотентность ограничения доли.
func TestClampUnit(t *testing.T) {
	cases := map[float64]float64{
		-0.5: 0,
		0:    0,
		0.42: 0.42,
		1:    1,
		3.7:  1,
	}

	for x, want := range cases {
		if got := ClampUnit(x); got != want {
			t.Fatalf("ClampUnit(%v): expected %v, got %v", x, want, got)
		}
		if got := ClampUnit(ClampUnit(x)); got != ClampUnit(x) {
			t.Fatalf("ClampUnit not idempotent for %v", x)
		}
	}

	if got := ClampUnit(math.NaN()); got != 0 {
		t.Fatalf("expected 0 for NaN, got %v", got)
	}
}

// TestPeriodKey проверяет формат ключа месяца.
func TestPeriodKey(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	if got := PeriodKey(now); got != "2024-03" {
		t.Fatalf("expected 2024-03, got %s", got)
	}
}

// TestParseDate проверяет терпимый разбор ISO-дат.
func TestParseDate(t *testing.T) {
	if got := ParseDate(""); got != nil {
		t.Fatalf("expected nil for empty string, got %v", got)
	}
	if got := ParseDate("not-a-date"); got != nil {
		t.Fatalf("expected nil for garbage, got %v", got)
	}

	got := ParseDate("2025-06-01")
	if got == nil || got.Format(dateLayout) != "2025-06-01" {
		t.Fatalf("expected 2025-06-01, got %v", got)
	}
}
