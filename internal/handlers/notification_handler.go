package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/notifications", h.GetNotifications, requireAuth)
	g.PUT("/notifications/read", h.MarkAllAsRead, requireAuth)
	g.GET("/notifications/unread/count", h.GetUnreadCount, requireAuth)
}

// GetNotifications returns the latest notifications of the authenticated user
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	skip, limit, err := pagination(c)
	if err != nil {
		return err
	}
	notifications, err := h.notificationService.List(c.Request().Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkAllAsRead marks every unread notification as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if _, err := h.notificationService.MarkAllRead(c.Request().Context(), middleware.CurrentUser(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
