package mismatch

import (
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
)

const clockLayout = "15:04"

// leaveHoursInWindow sums, over every leave span covering the target date,
// the hours the span overlaps the daily counting window. Spans with no clock
// times, or marked full day, count as covering the whole day.
func leaveHoursInWindow(records []evidence.LeaveRecord, date time.Time, windowStart, windowEnd string) float64 {
	winStart, err := atClock(date, windowStart)
	if err != nil {
		return 0
	}
	winEnd, err := atClock(date, windowEnd)
	if err != nil {
		return 0
	}

	total := 0.0
	for i := range records {
		rec := &records[i]
		if !rec.Covers(date) {
			continue
		}

		start, end := spanOnDate(rec, date)
		if start.Before(winStart) {
			start = winStart
		}
		if end.After(winEnd) {
			end = winEnd
		}
		if end.After(start) {
			total += end.Sub(start).Hours()
		}
	}
	return total
}

// spanOnDate bounds a leave span to the target date. Clock times only apply
// on the span's own first and last day; interior days are fully covered.
func spanOnDate(rec *evidence.LeaveRecord, date time.Time) (time.Time, time.Time) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	start := dayStart
	end := dayEnd

	if rec.IsFullDay {
		return start, end
	}

	if rec.StartTime != "" && sameDay(rec.StartDate, date) {
		if t, err := atSeconds(date, rec.StartTime); err == nil {
			start = t
		}
	}
	if rec.EndTime != "" && sameDay(rec.EndDate, date) {
		if t, err := atSeconds(date, rec.EndTime); err == nil {
			end = t
		}
	}
	return start, end
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func atSeconds(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
