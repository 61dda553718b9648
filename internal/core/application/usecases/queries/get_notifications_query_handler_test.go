package queries_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationsFeed struct{ mock.Mock }

func (m *MockNotificationsFeed) Error(ctx context.Context, subject, message string) {
	m.Called(ctx, subject, message)
}

func (m *MockNotificationsFeed) Info(ctx context.Context, subject, message string) {
	m.Called(ctx, subject, message)
}

func (m *MockNotificationsFeed) Recent() []ports.Notification {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ports.Notification)
}

func TestGetNotificationsQueryHandler_Handle_ReturnsRecentFeed(t *testing.T) {
	now := time.Now()
	feed := []ports.Notification{
		{
			ID:      uuid.New(),
			Level:   ports.NotificationError,
			Subject: "Status update failed",
			Message: "Order already delivered",
			At:      now,
		},
		{
			ID:      uuid.New(),
			Level:   ports.NotificationInfo,
			Subject: "New orders",
			Message: "3 new orders received",
			At:      now.Add(-time.Minute),
		},
	}

	notifier := &MockNotificationsFeed{}
	notifier.On("Recent").Return(feed).Once()

	handler := queries.NewGetNotificationsQueryHandler(notifier)

	notifications, err := handler.Handle(context.Background(), queries.NewGetNotificationsQuery())
	require.NoError(t, err)
	assert.Equal(t, feed, notifications)
}

func TestGetNotificationsQueryHandler_Handle_EmptyFeed(t *testing.T) {
	notifier := &MockNotificationsFeed{}
	notifier.On("Recent").Return(nil).Once()

	handler := queries.NewGetNotificationsQueryHandler(notifier)

	notifications, err := handler.Handle(context.Background(), queries.NewGetNotificationsQuery())
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestGetNotificationsQueryHandler_Handle_InvalidQuery(t *testing.T) {
	notifier := &MockNotificationsFeed{}
	handler := queries.NewGetNotificationsQueryHandler(notifier)

	_, err := handler.Handle(context.Background(), queries.GetNotificationsQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetNotificationsQueryIsNotConstructed)
	notifier.AssertNotCalled(t, "Recent")
}
