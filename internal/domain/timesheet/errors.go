package timesheet

import "errors"

var (
	ErrTimesheetNotFound       = errors.New("timesheet not found")
	ErrUnresolvedMismatches    = errors.New("cannot generate timesheet while pending mismatches remain")
	ErrCycleDataIncomplete     = errors.New("not all evidence feeds uploaded for the month")
	ErrMismatchesNotProcessed  = errors.New("mismatch detection has not been run for the month")
	ErrAlreadyGeneratedForDate = errors.New("timesheet already generated for this month")
)
