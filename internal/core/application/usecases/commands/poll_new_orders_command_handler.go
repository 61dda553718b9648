package commands

import (
	"context"
	"fmt"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/ports"
)

// PollNewOrdersResult reports how many orders the poll fetched and how
// many of them were seen for the first time.
type PollNewOrdersResult struct {
	Fetched      int
	NewlyTracked int
}

// PollNewOrdersCommandHandler pulls the newest orders from upstream into
// the local registry. Orders already tracked get their idle views
// refreshed from the fetched snapshot; busy views are left alone.
type PollNewOrdersCommandHandler struct {
	gateway  OrderLister
	registry *orderview.Registry
	notifier ports.Notifier
}

// NewPollNewOrdersCommandHandler creates a handler for order polling.
func NewPollNewOrdersCommandHandler(gateway OrderLister, registry *orderview.Registry, notifier ports.Notifier) PollNewOrdersCommandHandler {
	return PollNewOrdersCommandHandler{
		gateway:  gateway,
		registry: registry,
		notifier: notifier,
	}
}

// Handle processes the poll. Orders that fail to track are skipped rather
// than failing the whole poll; one malformed upstream record must not
// hide the rest of the page.
func (h PollNewOrdersCommandHandler) Handle(ctx context.Context, command PollNewOrdersCommand) (PollNewOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return PollNewOrdersResult{}, err
	}

	page, err := h.gateway.List(ctx, ports.OrderListFilter{
		Page:  1,
		Limit: command.Limit(),
		Sort:  "-created_at",
	})
	if err != nil {
		return PollNewOrdersResult{}, err
	}

	result := PollNewOrdersResult{Fetched: len(page.Orders)}
	for _, ord := range page.Orders {
		_, created, err := h.registry.Track(ord)
		if err != nil {
			continue
		}
		if created {
			result.NewlyTracked++
		}
	}

	if command.Notify() && result.NewlyTracked > 0 {
		message := fmt.Sprintf("%d new orders received", result.NewlyTracked)
		if result.NewlyTracked == 1 {
			message = "1 new order received"
		}
		h.notifier.Info(ctx, "New orders", message)
	}

	return result, nil
}
