package mismatch

import "errors"

// Mismatch workflow errors
var (
	ErrMismatchNotFound = errors.New("mismatch record not found")
	ErrNotOwner         = errors.New("mismatch belongs to another vendor")
	ErrNotTeamManager   = errors.New("mismatch belongs to another manager's team")
	ErrDeadlineExpired  = errors.New("mismatch resolution deadline has passed")
	ErrAlreadyFinal     = errors.New("mismatch is already in a terminal state")
	ErrNotYetResolved   = errors.New("vendor has not resolved this mismatch yet")
	ErrNotExpirable     = errors.New("mismatch deadline has not passed")
)
