package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workstead/hr-backend-go/internal/domain/notification"
	"github.com/workstead/hr-backend-go/internal/handler/http/middleware"
	"github.com/workstead/hr-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	GetMyNotifications(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.NotificationService
}

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// Send implements NotificationHandler.
func (n *NotificationHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req notification.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SendNotification decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sent, err := n.notificationService.Send(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Notification sent", sent)
}

// GetMyNotifications implements NotificationHandler.
func (n *NotificationHandlerImpl) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	unreadOnly := q.Get("unread") == "true"

	notifications, err := n.notificationService.GetMyNotifications(r.Context(), middleware.UserID(r), page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, notifications, &response.Meta{
		Page:       notifications.Page,
		Limit:      notifications.Limit,
		TotalItems: notifications.TotalCount,
		TotalPages: totalPages(notifications.TotalCount, notifications.Limit),
	})
}

// MarkAsRead implements NotificationHandler.
func (n *NotificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	err := n.notificationService.MarkAsRead(r.Context(), chi.URLParam(r, "id"), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllAsRead implements NotificationHandler.
func (n *NotificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := n.notificationService.MarkAllAsRead(r.Context(), middleware.UserID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}
