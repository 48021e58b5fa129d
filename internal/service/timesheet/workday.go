package timesheet

import (
	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
)

// workdaySplit is one day's contribution to the workday report buckets.
// Only the credited half of a half day counts toward worked days, so
// office + wfh always equals the status's workday value. Leave is tracked
// separately and never adds to worked days.
type workdaySplit struct {
	office float64
	wfh    float64
	leave  float64
}

func splitWorkday(status attendance.Status, wfhRate float64) workdaySplit {
	switch status {
	case attendance.StatusInOfficeFull:
		return workdaySplit{office: 1.0}
	case attendance.StatusHalfOfficeHalfWFH:
		return workdaySplit{office: 0.5}
	case attendance.StatusHalfOfficeHalfLeave:
		return workdaySplit{office: 0.5, leave: 0.5}
	case attendance.StatusWFHFull:
		return workdaySplit{wfh: wfhRate}
	case attendance.StatusHalfWFHHalfLeave:
		return workdaySplit{wfh: 0.5, leave: 0.5}
	case attendance.StatusLeave:
		return workdaySplit{leave: 1.0}
	default:
		return workdaySplit{}
	}
}
