package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("Notification not found")
	ErrNoRecipients         = errors.New("Notification needs at least one recipient")
)
