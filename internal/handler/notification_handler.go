package handler

import (
	"net/http"

	"github.com/M5Csoftware/m5c-portal-api/internal/middleware"
	"github.com/M5Csoftware/m5c-portal-api/internal/model"
	"github.com/M5Csoftware/m5c-portal-api/pkg/database"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListNotifications returns the account's notifications, unread first
func ListNotifications(c echo.Context) error {
	log := logger.FromContext(c)

	sess, _ := middleware.SessionFromContext(c)

	query := database.GetDB().WithContext(c.Request().Context()).
		Where("account_code = ?", *sess.AccountCode)

	if c.QueryParam("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []model.Notification
	result := query.Order("read ASC, created_at DESC").Find(&notifications)
	if result.Error != nil {
		log.Error("Failed to list notifications", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve notifications"})
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks a single notification as read, scoped to the
// session's account
func MarkNotificationRead(c echo.Context) error {
	log := logger.FromContext(c)

	sess, _ := middleware.SessionFromContext(c)
	id := c.Param("id")

	result := database.GetDB().WithContext(c.Request().Context()).
		Model(&model.Notification{}).
		Where("id = ? AND account_code = ?", id, *sess.AccountCode).
		Update("read", true)
	if result.Error != nil {
		log.Error("Failed to mark notification read", zap.String("notification_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}
