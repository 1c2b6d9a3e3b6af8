package handlers

import (
	"net/http"

	"dinemart/internal/common"
	"dinemart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers serves a user's in-app notifications
type NotificationHandlers struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationHandlers(notificationRepo repositories.NotificationRepository) *NotificationHandlers {
	return &NotificationHandlers{
		notificationRepo: notificationRepo,
	}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit, offset := parsePagination(c)
	notifications, err := h.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := common.ValidateUUID(c.Param("id"), "notification id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.notificationRepo.MarkRead(ctx, userID, id); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}
