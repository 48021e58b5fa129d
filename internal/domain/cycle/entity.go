// Package cycle tracks the per-site monthly administrative window: which
// evidence feeds are uploaded, whether mismatch detection has run, and
// whether the month is locked for timesheets. The cycle is the sole
// authority on whether uploads and timesheet generation are permitted.
package cycle

import (
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
)

type TimesheetStatus string

const (
	TimesheetNotGenerated TimesheetStatus = "not_generated"
	TimesheetGenerated    TimesheetStatus = "generated"
)

// UploadState records one evidence feed's upload flag. Flags only move
// forward; a re-upload refreshes the timestamp.
type UploadState struct {
	Uploaded   bool
	UploadedAt *time.Time
}

type Cycle struct {
	ID     string
	SiteID string
	Month  string // YYYY-MM

	Swipe UploadState
	WFH   UploadState
	Leave UploadState

	MismatchProcessed bool
	TimesheetStatus   TimesheetStatus
	UploadsLocked     bool

	// ResolutionDeadline is when open mismatches for this month expire.
	ResolutionDeadline time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllDataUploaded is the gate for mismatch detection: a pure AND over the
// three upload flags.
func (c *Cycle) AllDataUploaded() bool {
	return c.Swipe.Uploaded && c.WFH.Uploaded && c.Leave.Uploaded
}

// Availability converts the upload flags into the detector's evidence
// availability view.
func (c *Cycle) Availability() evidence.Availability {
	return evidence.Availability{
		Swipe: c.Swipe.Uploaded,
		WFH:   c.WFH.Uploaded,
		Leave: c.Leave.Uploaded,
	}
}
