package cycle

import "errors"

var (
	ErrCycleNotFound = errors.New("monthly cycle not found")
	ErrAlreadyLocked = errors.New("month is already locked for timesheets")
)
