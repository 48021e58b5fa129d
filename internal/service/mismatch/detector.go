package mismatch

import (
	"context"
	"fmt"

	"github.com/vams-io/vams-backend-go/internal/config"
	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/pkg/dates"
)

// dayEvidence is everything the detector needs about one vendor-day,
// gathered up front so the rule evaluation itself stays pure.
type dayEvidence struct {
	swipe      *evidence.SwipeRecord
	wfhPresent bool
	leaveHours float64
}

// detector evaluates one attendance record against the evidence for its day.
// Rules for a feed only fire when that feed has been uploaded.
type detector struct {
	cfg config.ReconciliationConfig
}

func newDetector(cfg config.ReconciliationConfig) *detector {
	return &detector{cfg: cfg}
}

// gather loads the day's evidence from the store for the statuses that need it.
func (d *detector) gather(ctx context.Context, store evidence.Store, att *attendance.Attendance) (dayEvidence, error) {
	var ev dayEvidence

	swipe, err := store.FindSwipe(ctx, att.VendorID, att.Date)
	if err != nil {
		return ev, fmt.Errorf("failed to load swipe evidence: %w", err)
	}
	ev.swipe = swipe

	wfh, err := store.FindWFH(ctx, att.VendorID, att.Date)
	if err != nil {
		return ev, fmt.Errorf("failed to load wfh evidence: %w", err)
	}
	ev.wfhPresent = wfh != nil

	leaves, err := store.FindLeave(ctx, att.VendorID, att.Date)
	if err != nil {
		return ev, fmt.Errorf("failed to load leave evidence: %w", err)
	}
	ev.leaveHours = leaveHoursInWindow(leaves, att.Date, d.cfg.LeaveWindowStart, d.cfg.LeaveWindowEnd)

	return ev, nil
}

// evaluate applies the per-status rule table and returns a draft, or nil when
// the day is clean.
func (d *detector) evaluate(att *attendance.Attendance, avail evidence.Availability, ev dayEvidence) *mismatch.Draft {
	draft := &mismatch.Draft{
		SiteID:         att.SiteID,
		VendorID:       att.VendorID,
		Date:           att.Date,
		Month:          dates.MonthOf(att.Date),
		OriginalStatus: att.Status,
	}

	switch att.Status {
	case attendance.StatusPending:
		draft.Reasons = append(draft.Reasons, mismatch.ReasonPendingStatus)
		draft.Expected = append(draft.Expected, mismatch.Expectation{})
		draft.Actual = append(draft.Actual, mismatch.Expectation{})

	case attendance.StatusInOfficeFull:
		d.checkSwipe(draft, avail, ev, d.cfg.MinOfficeHours, mismatch.ReasonShortSwipe)

	case attendance.StatusHalfOfficeHalfWFH:
		d.checkSwipe(draft, avail, ev, d.cfg.MinHalfOfficeHours, mismatch.ReasonShortHalfSwipe)
		d.checkWFH(draft, avail, ev)

	case attendance.StatusHalfOfficeHalfLeave:
		d.checkSwipe(draft, avail, ev, d.cfg.MinHalfOfficeHours, mismatch.ReasonShortHalfSwipe)
		d.checkLeave(draft, avail, ev, d.cfg.MinHalfLeaveHours, mismatch.ReasonShortHalfLeave)

	case attendance.StatusWFHFull:
		d.checkWFH(draft, avail, ev)

	case attendance.StatusHalfWFHHalfLeave:
		d.checkWFH(draft, avail, ev)
		d.checkLeave(draft, avail, ev, d.cfg.MinHalfLeaveHours, mismatch.ReasonShortHalfLeave)

	case attendance.StatusLeave:
		d.checkLeave(draft, avail, ev, d.cfg.MinFullLeaveHours, mismatch.ReasonShortLeave)

	case attendance.StatusHoliday:
		// Holidays are never checked.
	}

	if len(draft.Reasons) == 0 {
		return nil
	}
	return draft
}

func (d *detector) checkSwipe(draft *mismatch.Draft, avail evidence.Availability, ev dayEvidence, minHours float64, shortReason mismatch.ReasonCode) {
	if !avail.Swipe {
		return
	}

	expected := minHours
	if ev.swipe == nil {
		actual := 0.0
		draft.Reasons = append(draft.Reasons, mismatch.ReasonNoSwipe)
		draft.Expected = append(draft.Expected, mismatch.Expectation{SwipeHours: &expected})
		draft.Actual = append(draft.Actual, mismatch.Expectation{SwipeHours: &actual})
		return
	}
	if ev.swipe.TotalHours < minHours {
		actual := ev.swipe.TotalHours
		draft.Reasons = append(draft.Reasons, shortReason)
		draft.Expected = append(draft.Expected, mismatch.Expectation{SwipeHours: &expected})
		draft.Actual = append(draft.Actual, mismatch.Expectation{SwipeHours: &actual})
	}
}

func (d *detector) checkWFH(draft *mismatch.Draft, avail evidence.Availability, ev dayEvidence) {
	if !avail.WFH || ev.wfhPresent {
		return
	}

	required := true
	present := false
	draft.Reasons = append(draft.Reasons, mismatch.ReasonNoWFH)
	draft.Expected = append(draft.Expected, mismatch.Expectation{WFHRequired: &required})
	draft.Actual = append(draft.Actual, mismatch.Expectation{WFHPresent: &present})
}

func (d *detector) checkLeave(draft *mismatch.Draft, avail evidence.Availability, ev dayEvidence, minHours float64, shortReason mismatch.ReasonCode) {
	if !avail.Leave {
		return
	}

	expected := minHours
	actual := ev.leaveHours
	if ev.leaveHours == 0 {
		draft.Reasons = append(draft.Reasons, mismatch.ReasonNoLeave)
		draft.Expected = append(draft.Expected, mismatch.Expectation{LeaveHoursInWindow: &expected})
		draft.Actual = append(draft.Actual, mismatch.Expectation{LeaveHoursInWindow: &actual})
		return
	}
	if ev.leaveHours < minHours {
		draft.Reasons = append(draft.Reasons, shortReason)
		draft.Expected = append(draft.Expected, mismatch.Expectation{LeaveHoursInWindow: &expected})
		draft.Actual = append(draft.Actual, mismatch.Expectation{LeaveHoursInWindow: &actual})
	}
}
