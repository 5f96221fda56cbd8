package notification

import (
	"context"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/notification"
	"github.com/workstead/hr-backend-go/internal/domain/user"
)

type NotificationServiceImpl struct {
	notification.Repository
	user.UserRepository
}

func NewNotificationService(
	notificationRepository notification.Repository,
	userRepository user.UserRepository,
) notification.NotificationService {
	return &NotificationServiceImpl{
		Repository:     notificationRepository,
		UserRepository: userRepository,
	}
}

// Send implements notification.NotificationService. Every recipient must be
// a known user; unknown IDs fail the whole send.
func (s *NotificationServiceImpl) Send(ctx context.Context, senderID string, req notification.CreateNotificationRequest) (notification.NotificationResponse, error) {
	if err := req.Validate(); err != nil {
		return notification.NotificationResponse{}, err
	}

	for _, id := range req.RecipientIDs {
		if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
			return notification.NotificationResponse{}, err
		}
	}

	typ := notification.TypeGeneral
	if req.Type != "" {
		typ = notification.NotificationType(req.Type)
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err == nil {
			expiresAt = &t
		}
	}

	created, err := s.Repository.Create(ctx, notification.Notification{
		Type:      typ,
		Title:     req.Title,
		Message:   req.Message,
		SenderID:  &senderID,
		ExpiresAt: expiresAt,
	}, req.RecipientIDs)
	if err != nil {
		return notification.NotificationResponse{}, err
	}

	return notification.ToResponse(notification.Delivery{Notification: created}), nil
}

// GetMyNotifications implements notification.NotificationService.
func (s *NotificationServiceImpl) GetMyNotifications(ctx context.Context, userID string, page, limit int, unreadOnly bool) (notification.ListNotificationsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	deliveries, total, err := s.Repository.GetByUserID(ctx, userID, page, limit, unreadOnly)
	if err != nil {
		return notification.ListNotificationsResponse{}, err
	}

	unread, err := s.Repository.GetUnreadCount(ctx, userID)
	if err != nil {
		return notification.ListNotificationsResponse{}, err
	}

	resp := notification.ListNotificationsResponse{
		TotalCount:    total,
		UnreadCount:   unread,
		Page:          page,
		Limit:         limit,
		Notifications: make([]notification.NotificationResponse, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		resp.Notifications = append(resp.Notifications, notification.ToResponse(d))
	}
	return resp, nil
}

// MarkAsRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	return s.Repository.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.Repository.MarkAllAsRead(ctx, userID)
}
