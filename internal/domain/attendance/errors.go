package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrInvalidStatus        = errors.New("invalid attendance status")
	ErrDateOutsideEditRange = errors.New("attendance date is outside the allowed edit range")
	ErrUnresolvedMismatch   = errors.New("attendance for this date has an unresolved mismatch")
	ErrAlreadyProcessed     = errors.New("attendance has already been approved or rejected")
	ErrNotOwner             = errors.New("attendance record belongs to another vendor")
	ErrNotTeamManager       = errors.New("attendance record belongs to another manager's team")
)
