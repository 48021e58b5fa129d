package evidence

import "errors"

var (
	ErrUploadsLocked   = errors.New("uploads are locked for this month")
	ErrUnknownDataType = errors.New("unknown evidence data type")
)
