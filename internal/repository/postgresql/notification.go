package postgresql

import (
	"context"
	"fmt"

	"github.com/workstead/hr-backend-go/internal/domain/notification"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository. The recipient fan-out is a
// single multi-row insert so creation stays atomic inside a transaction.
func (n *notificationRepository) Create(ctx context.Context, notif notification.Notification, recipientIDs []string) (notification.Notification, error) {
	if len(recipientIDs) == 0 {
		return notification.Notification{}, notification.ErrNoRecipients
	}

	q := GetQuerier(ctx, n.db)

	query := `
		INSERT INTO notifications (type, title, message, sender_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		string(notif.Type), notif.Title, notif.Message, notif.SenderID, notif.ExpiresAt,
	).Scan(&notif.ID, &notif.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO notification_recipients (notification_id, user_id)
		SELECT $1, unnest($2::uuid[])
	`, notif.ID, recipientIDs)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification recipients: %w", err)
	}

	return notif, nil
}

// GetByUserID implements notification.Repository. Expired notifications are
// filtered out.
func (n *notificationRepository) GetByUserID(ctx context.Context, userID string, page, limit int, unreadOnly bool) ([]notification.Delivery, int64, error) {
	q := GetQuerier(ctx, n.db)

	where := `
		WHERE nr.user_id = $1
		  AND (n.expires_at IS NULL OR n.expires_at > NOW())
	`
	if unreadOnly {
		where += ` AND nr.is_read = FALSE`
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM notifications n
		JOIN notification_recipients nr ON nr.notification_id = n.id
	` + where
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT n.id, n.type, n.title, n.message, n.sender_id, n.expires_at, n.created_at,
			   nr.is_read, nr.read_at
		FROM notifications n
		JOIN notification_recipients nr ON nr.notification_id = n.id
	` + where + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var deliveries []notification.Delivery
	for rows.Next() {
		var d notification.Delivery
		var typ string
		if err := rows.Scan(
			&d.ID, &typ, &d.Title, &d.Message, &d.SenderID, &d.ExpiresAt, &d.CreatedAt,
			&d.IsRead, &d.ReadAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		d.Type = notification.NotificationType(typ)
		deliveries = append(deliveries, d)
	}

	return deliveries, total, rows.Err()
}

// GetUnreadCount implements notification.Repository.
func (n *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, n.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM notifications n
		JOIN notification_recipients nr ON nr.notification_id = n.id
		WHERE nr.user_id = $1
		  AND nr.is_read = FALSE
		  AND (n.expires_at IS NULL OR n.expires_at > NOW())
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository.
func (n *notificationRepository) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notification_recipients
		SET is_read = TRUE, read_at = NOW()
		WHERE notification_id = $1 AND user_id = $2 AND is_read = FALSE
	`

	tag, err := q.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (n *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, n.db)

	_, err := q.Exec(ctx, `
		UPDATE notification_recipients
		SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
