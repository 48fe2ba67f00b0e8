// Package jobs holds the recurring background processes.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"civicconnect-be/services"

	"github.com/robfig/cron/v3"
)

// ErrCleanupBusy is returned by RunNow when a sweep is already in
// progress. Scheduled ticks skip silently instead; an operator-triggered
// run needs to know it did not happen.
var ErrCleanupBusy = errors.New("cleanup already in progress")

// CleanupJob drives the retention sweep on a cron schedule. The job is
// Idle or Running, nothing else; a tick landing while Running is dropped,
// the next scheduled tick catches up. Single-flight is an in-process
// flag, so one scheduler instance per deployment.
type CleanupJob struct {
	service *services.CleanupService
	spec    string
	logger  *slog.Logger

	// now is the injectable clock; tests drive ticks deterministically.
	now func() time.Time

	running atomic.Bool
	cron    *cron.Cron
}

func NewCleanupJob(service *services.CleanupService, spec string, location *time.Location, logger *slog.Logger) *CleanupJob {
	if logger == nil {
		logger = slog.Default()
	}
	if location == nil {
		location = time.Local
	}
	return &CleanupJob{
		service: service,
		spec:    spec,
		logger:  logger,
		now:     time.Now,
		cron:    cron.New(cron.WithLocation(location)),
	}
}

// WithClock replaces the job's clock. Test hook.
func (j *CleanupJob) WithClock(now func() time.Time) *CleanupJob {
	j.now = now
	return j
}

// Start arms the cron schedule. Safe to call once per process lifecycle.
func (j *CleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Tick(context.Background())
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("cleanup job started", "schedule", j.spec)
	return nil
}

// Stop disarms the schedule. A sweep already in flight finishes.
func (j *CleanupJob) Stop() {
	j.cron.Stop()
	j.logger.Info("cleanup job stopped")
}

// Tick runs one scheduled sweep. Failures are logged and contained: a
// missed cycle is not user-visible and must not crash the process. The
// running flag is always cleared, error or not.
func (j *CleanupJob) Tick(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Info("cleanup already in progress, skipping tick")
		return
	}
	defer j.running.Store(false)

	result, err := j.service.DeleteOldResolvedIssues(ctx, j.now())
	if err != nil {
		j.logger.Error("cleanup tick failed", "error", err)
		return
	}
	j.logger.Info("cleanup tick completed", "deleted", result.Deleted, "message", result.Message)
}

// RunNow runs a sweep immediately for an operator or a test. Unlike a
// scheduled tick it propagates failures and rejects with ErrCleanupBusy
// when a sweep is already running.
func (j *CleanupJob) RunNow(ctx context.Context) (*services.CleanupResult, error) {
	if !j.running.CompareAndSwap(false, true) {
		return nil, ErrCleanupBusy
	}
	defer j.running.Store(false)

	return j.service.DeleteOldResolvedIssues(ctx, j.now())
}
