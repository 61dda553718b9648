// Package notify delivers staff-facing notifications. The default adapter
// logs every notification and keeps a bounded ring of recent entries for
// the header feed, which the UI polls instead of receiving pushes.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"backoffice/internal/core/ports"

	"github.com/google/uuid"
)

const defaultCapacity = 50

// LogNotifier implements ports.Notifier. Notifications are written to the
// structured log and retained in memory, newest first, up to a fixed
// capacity. Safe for concurrent use.
type LogNotifier struct {
	logger *slog.Logger
	clock  func() time.Time

	mu       sync.Mutex
	ring     []ports.Notification
	start    int
	count    int
	capacity int
}

// Option customizes a LogNotifier.
type Option func(*LogNotifier)

// WithCapacity sets how many notifications are retained. Values below one
// are ignored.
func WithCapacity(capacity int) Option {
	return func(n *LogNotifier) {
		if capacity > 0 {
			n.capacity = capacity
		}
	}
}

// WithClock replaces the wall clock used for notification timestamps.
func WithClock(clock func() time.Time) Option {
	return func(n *LogNotifier) {
		n.clock = clock
	}
}

// NewLogNotifier creates a notifier that logs through the given logger and
// retains the most recent notifications.
func NewLogNotifier(logger *slog.Logger, opts ...Option) *LogNotifier {
	notifier := &LogNotifier{
		logger:   logger.With("component", "notifier"),
		clock:    time.Now,
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(notifier)
	}

	notifier.ring = make([]ports.Notification, notifier.capacity)
	return notifier
}

// Error reports a failed operation.
func (n *LogNotifier) Error(ctx context.Context, subject, message string) {
	n.logger.ErrorContext(ctx, "Notification", "subject", subject, "message", message)
	n.record(ports.NotificationError, subject, message)
}

// Info announces a routine event.
func (n *LogNotifier) Info(ctx context.Context, subject, message string) {
	n.logger.InfoContext(ctx, "Notification", "subject", subject, "message", message)
	n.record(ports.NotificationInfo, subject, message)
}

// Recent returns the retained notifications, newest first.
func (n *LogNotifier) Recent() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	recent := make([]ports.Notification, n.count)
	for i := 0; i < n.count; i++ {
		recent[i] = n.ring[(n.start+n.count-1-i)%n.capacity]
	}
	return recent
}

func (n *LogNotifier) record(level ports.NotificationLevel, subject, message string) {
	notification := ports.Notification{
		ID:      uuid.New(),
		Level:   level,
		Subject: subject,
		Message: message,
		At:      n.clock(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.count < n.capacity {
		n.ring[(n.start+n.count)%n.capacity] = notification
		n.count++
		return
	}

	// Ring is full; the oldest entry is overwritten.
	n.ring[n.start] = notification
	n.start = (n.start + 1) % n.capacity
}
