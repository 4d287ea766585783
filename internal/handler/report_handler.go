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

// ShipmentSummary reports per-status shipment counts and volume totals for
// the session's account
func ShipmentSummary(c echo.Context) error {
	log := logger.FromContext(c)

	sess, _ := middleware.SessionFromContext(c)

	var rows []struct {
		Status string  `json:"status"`
		Count  int64   `json:"count"`
		Weight float64 `json:"weight"`
		Pieces int64   `json:"pieces"`
	}

	result := database.GetDB().WithContext(c.Request().Context()).
		Model(&model.Shipment{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(weight), 0) as weight, COALESCE(SUM(pieces), 0) as pieces").
		Where("account_code = ?", *sess.AccountCode).
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		log.Error("Failed to build shipment summary", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}

	var total int64
	for _, r := range rows {
		total += r.Count
	}

	return c.JSON(http.StatusOK, echo.Map{
		"account_code": *sess.AccountCode,
		"by_status":    rows,
		"total":        total,
	})
}
