// Package cron runs the background sweeps on fixed intervals. Every job
// this service schedules is a periodic full-table sweep, so there is no
// cron-expression parsing: a job is a name, an interval and a function.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// Scheduler fires registered jobs once at startup and then on their
// intervals until stopped.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Register adds a job. Register before Start; jobs added later are not
// picked up.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	slog.Info("Sweep registered", "name", job.Name, "every", job.Every)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}
	slog.Info("Sweep scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Sweep scheduler stopped")
}

// RunOnce fires every registered job a single time, in registration order,
// outside the schedule.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.fire(ctx, job)
	}
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Every)
	defer ticker.Stop()

	// First run happens at startup so a restart never delays an overdue
	// sweep by a full interval.
	s.fire(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.fire(s.ctx, job)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		slog.Error("Sweep failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Sweep completed", "name", job.Name, "duration", time.Since(start))
}
