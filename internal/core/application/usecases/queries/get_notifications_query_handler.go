package queries

import (
	"context"

	"backoffice/internal/core/ports"
)

// GetNotificationsQueryHandler serves the notification feed shown in the
// back-office header.
type GetNotificationsQueryHandler struct {
	notifier ports.Notifier
}

// NewGetNotificationsQueryHandler creates a handler for notification
// queries.
func NewGetNotificationsQueryHandler(notifier ports.Notifier) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{notifier: notifier}
}

// Handle returns the recent notifications, newest first.
func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]ports.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.notifier.Recent(), nil
}
