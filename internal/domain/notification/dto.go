package notification

import (
	"time"

	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

type CreateNotificationRequest struct {
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Type         string   `json:"type"`
	RecipientIDs []string `json:"recipient_ids"`
	ExpiresAt    *string  `json:"expires_at"`
}

func (r *CreateNotificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message is required"})
	}
	if len(r.RecipientIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "recipient_ids", Message: "at least one recipient is required"})
	}
	if r.ExpiresAt != nil {
		if _, ok := validator.IsValidDateTime(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "expires_at", Message: "expires_at must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	SenderID  *string    `json:"sender_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToResponse(d Delivery) NotificationResponse {
	return NotificationResponse{
		ID:        d.ID,
		Type:      string(d.Type),
		Title:     d.Title,
		Message:   d.Message,
		SenderID:  d.SenderID,
		IsRead:    d.IsRead,
		ReadAt:    d.ReadAt,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

type ListNotificationsResponse struct {
	TotalCount    int64                  `json:"total_count"`
	UnreadCount   int64                  `json:"unread_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Notifications []NotificationResponse `json:"notifications"`
}
