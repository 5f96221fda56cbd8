package notification

import "context"

// Repository defines the notification repository interface
type Repository interface {
	// Create inserts the notification and fans out the recipient rows.
	Create(ctx context.Context, n Notification, recipientIDs []string) (Notification, error)
	GetByUserID(ctx context.Context, userID string, page, limit int, unreadOnly bool) ([]Delivery, int64, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
