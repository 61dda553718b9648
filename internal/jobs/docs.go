// Package jobs provides scheduled background tasks for the back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the back office relies on.
//
// # Available Jobs
//
// 1. OrderPollJob - Polls the upstream order system for the newest orders and raises a banner when new ones arrive
// 2. BranchCacheRefreshJob - Re-warms the courier branch cache after the local day boundary
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(pollHandler, lookupService, pollSchedule, branchRefreshSchedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both schedules are six-field cron expressions (with seconds) taken from
// configuration. The poll job defaults to every thirty seconds; the branch
// refresh runs once per day, just after local midnight.
//
// # Error Handling
//
// - The poll job skips a tick while the previous poll is still in flight
// - The first poll only seeds the local views and raises no banner
// - Failed job starts will stop any already running jobs
package jobs
