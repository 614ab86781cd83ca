package notification

import (
	"context"
)

// Service queues notifications from the loan and payrun services and
// serves the inbox and SSE endpoints.
type Service interface {
	// Queueing is asynchronous; a background worker persists batches.
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error

	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	Stop()
}
