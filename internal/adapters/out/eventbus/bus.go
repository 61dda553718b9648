// Package eventbus propagates confirmed domain events to in-process
// subscribers, such as audit logging and screen refresh hooks.
package eventbus

import (
	"context"
	"sync"

	"backoffice/internal/core/ports"
)

// Subscriber receives a confirmed status change event.
type Subscriber func(ctx context.Context, event ports.OrderStatusChanged)

type subscription struct {
	id         int
	subscriber Subscriber
}

// InProcessBus implements ports.EventBus with synchronous in-process
// delivery. Subscribers are invoked in subscription order, on the
// publisher's goroutine. Safe for concurrent use.
type InProcessBus struct {
	mu            sync.RWMutex
	subscriptions []subscription
	nextID        int
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus() *InProcessBus {
	return &InProcessBus{}
}

// SubscribeOrderStatusChanged registers a subscriber for status change
// events. The returned function removes the subscription; calling it more
// than once is harmless.
func (b *InProcessBus) SubscribeOrderStatusChanged(subscriber Subscriber) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscriptions = append(b.subscriptions, subscription{id: id, subscriber: subscriber})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subscriptions {
			if sub.id == id {
				b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// PublishOrderStatusChanged delivers the event to all subscribers. The bus
// does not hold its lock during delivery, so a subscriber may unsubscribe
// itself without deadlocking.
func (b *InProcessBus) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) {
	b.mu.RLock()
	subscriptions := make([]subscription, len(b.subscriptions))
	copy(subscriptions, b.subscriptions)
	b.mu.RUnlock()

	for _, sub := range subscriptions {
		sub.subscriber(ctx, event)
	}
}
