package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	inhttp "backoffice/internal/adapters/in/http"
	"backoffice/internal/adapters/out/eventbus"
	"backoffice/internal/adapters/out/ncm"
	"backoffice/internal/adapters/out/notify"
	"backoffice/internal/adapters/out/ordersapi"
	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/jobs"
)

const (
	defaultPollSchedule          = "*/30 * * * * *"
	defaultBranchRefreshSchedule = "0 5 0 * * *"
)

type CompositionRoot struct {
	configs Config
	logger  *slog.Logger

	ordersAPI     *ordersapi.Client
	registry      *orderview.Registry
	policy        services.StatusPolicy
	lookupService *lookups.Service
	notifier      *notify.LogNotifier
	eventBus      *eventbus.InProcessBus
}

func NewCompositionRoot(configs Config, logger *slog.Logger) (CompositionRoot, error) {
	ordersAPI, err := ordersapi.NewClient(configs.OrdersAPIBaseURL, configs.OrdersAPIToken)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("orders api client: %w", err)
	}

	branchAPI, err := ncm.NewClient(configs.NCMAPIBaseURL)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("branch directory client: %w", err)
	}

	var location *time.Location
	if configs.CacheTimezone != "" {
		location, err = time.LoadLocation(configs.CacheTimezone)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("cache timezone: %w", err)
		}
	}

	lookupService, err := lookups.NewService(ordersAPI, branchAPI, location)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("lookup service: %w", err)
	}

	return CompositionRoot{
		configs:       configs,
		logger:        logger,
		ordersAPI:     ordersAPI,
		registry:      orderview.NewRegistry(),
		policy:        services.NewStatusPolicy(),
		lookupService: lookupService,
		notifier:      notify.NewLogNotifier(logger),
		eventBus:      eventbus.NewInProcessBus(),
	}, nil
}

func (c *CompositionRoot) CreateRequestStatusChangeCommandHandler() commands.RequestStatusChangeCommandHandler {
	return commands.NewRequestStatusChangeCommandHandler(c.registry, c.policy)
}

func (c *CompositionRoot) CreateConfirmStatusChangeCommandHandler() commands.ConfirmStatusChangeCommandHandler {
	return commands.NewConfirmStatusChangeCommandHandler(c.registry, c.policy, c.ordersAPI, c.notifier, c.eventBus)
}

func (c *CompositionRoot) CreateCancelStatusChangeCommandHandler() commands.CancelStatusChangeCommandHandler {
	return commands.NewCancelStatusChangeCommandHandler(c.registry)
}

func (c *CompositionRoot) CreateBulkStatusChangeCommandHandler() commands.BulkStatusChangeCommandHandler {
	return commands.NewBulkStatusChangeCommandHandler(c.ordersAPI, c.registry, c.notifier, c.eventBus)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.ordersAPI, c.registry)
}

func (c *CompositionRoot) CreatePollNewOrdersCommandHandler() commands.PollNewOrdersCommandHandler {
	return commands.NewPollNewOrdersCommandHandler(c.ordersAPI, c.registry, c.notifier)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.ordersAPI, c.registry)
}

func (c *CompositionRoot) CreateGetStatusMenuQueryHandler() queries.GetStatusMenuQueryHandler {
	return queries.NewGetStatusMenuQueryHandler(c.registry, c.policy)
}

func (c *CompositionRoot) CreateGetOrderSourcesQueryHandler() queries.GetOrderSourcesQueryHandler {
	return queries.NewGetOrderSourcesQueryHandler(c.lookupService)
}

func (c *CompositionRoot) CreateGetCourierBranchesQueryHandler() queries.GetCourierBranchesQueryHandler {
	return queries.NewGetCourierBranchesQueryHandler(c.lookupService)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.notifier)
}

func (c *CompositionRoot) CreateServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateRequestStatusChangeCommandHandler(),
		c.CreateConfirmStatusChangeCommandHandler(),
		c.CreateCancelStatusChangeCommandHandler(),
		c.CreateBulkStatusChangeCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetStatusMenuQueryHandler(),
		c.CreateGetOrderSourcesQueryHandler(),
		c.CreateGetCourierBranchesQueryHandler(),
		c.CreateGetNotificationsQueryHandler(),
		c.lookupService,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	pollSchedule := c.configs.OrderPollSchedule
	if pollSchedule == "" {
		pollSchedule = defaultPollSchedule
	}

	branchRefreshSchedule := c.configs.BranchRefreshSchedule
	if branchRefreshSchedule == "" {
		branchRefreshSchedule = defaultBranchRefreshSchedule
	}

	return jobs.NewJobManager(c.CreatePollNewOrdersCommandHandler(), c.lookupService, pollSchedule, branchRefreshSchedule, c.logger)
}

// RegisterAuditSubscriber logs every confirmed status change, so operations
// keep a trail of which order moved where. Returns the unsubscribe function.
func (c *CompositionRoot) RegisterAuditSubscriber() func() {
	return c.eventBus.SubscribeOrderStatusChanged(func(ctx context.Context, event ports.OrderStatusChanged) {
		c.logger.InfoContext(ctx, "Order status changed",
			"order_id", event.OrderID.String(),
			"from", event.From.String(),
			"to", event.To.String(),
		)
	})
}
