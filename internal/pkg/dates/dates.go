// Package dates centralizes the date and month conventions used across the
// reconciliation flows: dates are UTC midnights formatted "2006-01-02",
// months are "2006-01" strings.
package dates

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a "YYYY-MM" string into the first day of the month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse month %q: %w", s, err)
	}
	return t, nil
}

// MonthOf returns the "YYYY-MM" month the date falls in.
func MonthOf(date time.Time) string {
	return date.Format(MonthLayout)
}

// NextMonth returns the month after the given "YYYY-MM" month, rolling the
// year over in December.
func NextMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 1, 0).Format(MonthLayout), nil
}

// PrevMonth returns the month before the given "YYYY-MM" month.
func PrevMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, -1, 0).Format(MonthLayout), nil
}

// MonthBounds returns the first day of the month and the first day of the
// next month, so [start, end) covers every date in the month.
func MonthBounds(month string) (time.Time, time.Time, error) {
	start, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// DaysIn returns every date of the month in order.
func DaysIn(month string) ([]time.Time, error) {
	start, end, err := MonthBounds(month)
	if err != nil {
		return nil, err
	}
	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// AtTime combines a date with an "HH:MM:SS" time of day.
func AtTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
