package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeGeneral       NotificationType = "general"
	TypeLeaveRequest  NotificationType = "leave_request"
	TypeLeaveApproved NotificationType = "leave_approved"
	TypeLeaveRejected NotificationType = "leave_rejected"
	TypeLeaveCancel   NotificationType = "leave_cancelled"
)

// Notification represents a notification entity. The recipient list is fixed
// at creation time; each recipient tracks its own read state.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	SenderID  *string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// Recipient is one row of the notification_recipients table.
type Recipient struct {
	NotificationID string
	UserID         string
	IsRead         bool
	ReadAt         *time.Time
}

// Delivery is a notification as seen by one recipient.
type Delivery struct {
	Notification
	IsRead bool
	ReadAt *time.Time
}
