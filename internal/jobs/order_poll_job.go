package jobs

import (
	"context"
	"log/slog"
	"sync"

	"backoffice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// orderPollLimit is how many of the newest orders each poll fetches.
const orderPollLimit = 50

// OrderPollJob periodically pulls the newest orders from the upstream
// system so they appear in the back office without a manual refresh.
// Newly seen orders raise a banner notification, except on the first
// poll, which only seeds the local views.
type OrderPollJob struct {
	handler  commands.PollNewOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger

	// running skips a tick while the previous poll is still in flight,
	// so a slow upstream cannot stack polls.
	running sync.Mutex
	seeded  bool
}

// NewOrderPollJob creates a job that polls for new orders on the given
// cron schedule (six-field, with seconds).
func NewOrderPollJob(handler commands.PollNewOrdersCommandHandler, schedule string, logger *slog.Logger) *OrderPollJob {
	return &OrderPollJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "order_poll_job"),
	}
}

// Start begins polling on the configured schedule.
func (j *OrderPollJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order poll job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job.
func (j *OrderPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order poll job stopped")
}

func (j *OrderPollJob) tick() {
	if !j.running.TryLock() {
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()

	cmd, err := commands.NewPollNewOrdersCommand(orderPollLimit, j.seeded)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order poll job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order poll job failed", "error", err)
		return
	}

	j.seeded = true
	if result.NewlyTracked > 0 {
		j.logger.InfoContext(ctx, "Order poll picked up new orders", "count", result.NewlyTracked)
	}
}
