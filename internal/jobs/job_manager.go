package jobs

import (
	"fmt"
	"log/slog"

	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderPollJob          *OrderPollJob
	branchCacheRefreshJob *BranchCacheRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// The schedules are six-field cron expressions taken from configuration.
func NewJobManager(
	pollHandler commands.PollNewOrdersCommandHandler,
	lookupService *lookups.Service,
	pollSchedule string,
	branchRefreshSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderPollJob:          NewOrderPollJob(pollHandler, pollSchedule, logger),
		branchCacheRefreshJob: NewBranchCacheRefreshJob(lookupService, branchRefreshSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderPollJob.Start(); err != nil {
		return fmt.Errorf("failed to start order poll job: %w", err)
	}

	if err := jm.branchCacheRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderPollJob.Stop()
		return fmt.Errorf("failed to start branch cache refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.branchCacheRefreshJob.Stop()
	jm.orderPollJob.Stop()
}
