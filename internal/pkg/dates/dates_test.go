package dates

import (
	"testing"
	"time"
)

func TestNextMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-01", "2025-02"},
		{"2025-11", "2025-12"},
		{"2025-12", "2026-01"},
	}
	for _, c := range cases {
		got, err := NextMonth(c.in)
		if err != nil {
			t.Fatalf("NextMonth(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("NextMonth(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := NextMonth("2025-13"); err == nil {
		t.Error("NextMonth(2025-13) expected error")
	}
}

func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds("2025-02")
	if err != nil {
		t.Fatalf("MonthBounds error: %v", err)
	}
	if start.Format(DateLayout) != "2025-02-01" {
		t.Errorf("start = %s, want 2025-02-01", start.Format(DateLayout))
	}
	if end.Format(DateLayout) != "2025-03-01" {
		t.Errorf("end = %s, want 2025-03-01", end.Format(DateLayout))
	}
}

func TestDaysIn(t *testing.T) {
	days, err := DaysIn("2024-02")
	if err != nil {
		t.Fatalf("DaysIn error: %v", err)
	}
	if len(days) != 29 {
		t.Errorf("len(days) = %d, want 29 for leap February", len(days))
	}
	if days[0].Format(DateLayout) != "2024-02-01" {
		t.Errorf("first day = %s", days[0].Format(DateLayout))
	}
	if days[28].Format(DateLayout) != "2024-02-29" {
		t.Errorf("last day = %s", days[28].Format(DateLayout))
	}
}

func TestAtTime(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := AtTime(date, "06:30:15")
	if err != nil {
		t.Fatalf("AtTime error: %v", err)
	}
	want := time.Date(2025, 3, 10, 6, 30, 15, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AtTime = %v, want %v", got, want)
	}

	if _, err := AtTime(date, "25:00:00"); err == nil {
		t.Error("AtTime(25:00:00) expected error")
	}
}
