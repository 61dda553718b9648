package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationLevel classifies a staff-facing notification.
type NotificationLevel string

const (
	// NotificationInfo announces routine events, such as new orders.
	NotificationInfo NotificationLevel = "info"
	// NotificationError reports a failed operation the staff member
	// should retry or escalate.
	NotificationError NotificationLevel = "error"
)

// Notification is a single staff-facing message.
type Notification struct {
	ID      uuid.UUID
	Level   NotificationLevel
	Subject string
	Message string
	At      time.Time
}

// Notifier delivers notifications to back-office staff. Implementations
// must be safe for concurrent use.
//
// Each failed operation produces exactly one Error notification; callers
// are responsible for not notifying twice about the same failure.
type Notifier interface {
	// Error reports a failed operation.
	Error(ctx context.Context, subject, message string)

	// Info announces a routine event.
	Info(ctx context.Context, subject, message string)

	// Recent returns the most recent notifications, newest first.
	Recent() []Notification
}
