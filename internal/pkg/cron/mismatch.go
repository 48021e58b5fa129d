package cron

import (
	"context"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
)

// MismatchJobs contains mismatch-lifecycle sweeps.
type MismatchJobs struct {
	mismatchService mismatch.Service
}

func NewMismatchJobs(mismatchService mismatch.Service) *MismatchJobs {
	return &MismatchJobs{mismatchService: mismatchService}
}

// RegisterJobs registers all mismatch-related sweeps.
func (j *MismatchJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Register(Job{
		Name:  "expire_overdue_mismatches",
		Every: 1 * time.Hour,
		Run:   j.ExpireOverdueMismatches,
	})
}

// ExpireOverdueMismatches moves pending and vendor_updated mismatches past
// their deadline to expired, auto-resolving attendance when configured.
func (j *MismatchJobs) ExpireOverdueMismatches(ctx context.Context) error {
	_, err := j.mismatchService.ExpireOverdue(ctx, time.Now().UTC())
	return err
}
