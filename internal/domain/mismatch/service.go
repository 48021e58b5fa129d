package mismatch

import (
	"context"
	"time"
)

// Service owns the mismatch lifecycle: batch detection, vendor resolution,
// manager action and deadline expiry.
type Service interface {
	// RunDetection compares a site's attendance for a month against the
	// uploaded evidence. Until every evidence feed for the month has been
	// uploaded it is a zero-count no-op that leaves the cycle unprocessed.
	// Per-record failures are logged and skipped.
	RunDetection(ctx context.Context, siteID string, month string) (DetectionResult, error)

	// RedetectDay re-evaluates a single vendor-day after an attendance edit.
	// No-op returning false unless detection has already run for the day's
	// month. Returns whether an open mismatch exists for the day afterward.
	RedetectDay(ctx context.Context, vendorID string, date time.Time) (bool, error)

	// Resolve records the owning vendor's proposed status before the deadline
	Resolve(ctx context.Context, req ResolveRequest) (Mismatch, error)

	// ManagerAction approves or rejects a vendor resolution. Approval
	// cascades the proposed status into the attendance record's final
	// status atomically with the mismatch transition.
	ManagerAction(ctx context.Context, req ActionRequest) (Mismatch, error)

	// AutoExpire expires one overdue mismatch, recording a synthetic vendor
	// resolution with the configured default status and cascading the
	// attendance final status exactly like an approval.
	AutoExpire(ctx context.Context, mismatchID string) (Mismatch, error)

	// ExpireOverdue sweeps every open mismatch whose deadline is before now.
	// Returns how many were expired; individual failures are logged and
	// skipped.
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)

	// ForVendor lists a vendor's mismatches, optionally filtered by status
	ForVendor(ctx context.Context, vendorID string, status *Status) ([]Mismatch, error)

	// ForManager lists mismatches across a manager's team
	ForManager(ctx context.Context, managerID string) ([]Mismatch, error)

	// StatsForMonth counts a site's mismatches per status for one month
	StatsForMonth(ctx context.Context, siteID string, month string) (MonthlyStats, error)
}
