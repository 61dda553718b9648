package ports

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/order"
)

// OrderStatusChanged is published after a status transition has been
// confirmed by the upstream order system. It is never published for
// optimistic local updates that were rolled back.
type OrderStatusChanged struct {
	OrderID order.ID
	From    order.Status
	To      order.Status
	At      time.Time
}

// EventBus propagates confirmed domain events to in-process subscribers,
// such as the audit log and screen refresh hooks.
type EventBus interface {
	// PublishOrderStatusChanged delivers the event to all subscribers.
	// Delivery is synchronous; publishers should not hold locks while
	// calling it.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged)
}
