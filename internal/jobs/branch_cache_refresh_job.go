package jobs

import (
	"context"
	"log/slog"

	"backoffice/internal/core/application/lookups"

	"github.com/robfig/cron/v3"
)

// BranchCacheRefreshJob re-warms the courier branch cache after the local
// day boundary. The cache would also expire lazily on the first request of
// the day; the job keeps the first form open of the morning fast.
type BranchCacheRefreshJob struct {
	lookups  *lookups.Service
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewBranchCacheRefreshJob creates a job that refreshes the branch cache
// on the given cron schedule (six-field, with seconds), typically just
// after local midnight.
func NewBranchCacheRefreshJob(lookupService *lookups.Service, schedule string, logger *slog.Logger) *BranchCacheRefreshJob {
	return &BranchCacheRefreshJob{
		lookups:  lookupService,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "branch_cache_refresh_job"),
	}
}

// Start begins refreshing on the configured schedule.
func (j *BranchCacheRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if err := j.lookups.RefreshBranches(ctx); err != nil {
			// The stale entries were already dropped; the next branch
			// request fetches fresh ones.
			j.logger.ErrorContext(ctx, "Branch cache refresh failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Branch cache refreshed")
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Branch cache refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job.
func (j *BranchCacheRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Branch cache refresh job stopped")
}
