package notification

import "context"

// NotificationService - interface for notification operations
type NotificationService interface {
	Send(ctx context.Context, senderID string, req CreateNotificationRequest) (NotificationResponse, error)
	GetMyNotifications(ctx context.Context, userID string, page, limit int, unreadOnly bool) (ListNotificationsResponse, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
