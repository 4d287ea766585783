package handler

import (
	"net/http"
	"time"

	"github.com/M5Csoftware/m5c-portal-api/internal/middleware"
	"github.com/M5Csoftware/m5c-portal-api/internal/model"
	"github.com/M5Csoftware/m5c-portal-api/pkg/database"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListLedger returns the account's ledger entries with optional date
// filtering, plus the running balance over the returned entries
func ListLedger(c echo.Context) error {
	log := logger.FromContext(c)

	sess, _ := middleware.SessionFromContext(c)

	query := database.GetDB().WithContext(c.Request().Context()).
		Where("account_code = ?", *sess.AccountCode)

	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date, expected YYYY-MM-DD"})
		}
		query = query.Where("date >= ?", t)
	}

	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date, expected YYYY-MM-DD"})
		}
		query = query.Where("date <= ?", t)
	}

	var entries []model.LedgerEntry
	result := query.Order("date ASC, id ASC").Find(&entries)
	if result.Error != nil {
		log.Error("Failed to list ledger entries", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve ledger"})
	}

	var debit, credit float64
	for _, e := range entries {
		debit += e.Debit
		credit += e.Credit
	}

	log.Info("Ledger retrieved",
		zap.String("account_code", *sess.AccountCode),
		zap.Int("count", len(entries)))
	return c.JSON(http.StatusOK, echo.Map{
		"entries":      entries,
		"total_debit":  debit,
		"total_credit": credit,
		"balance":      debit - credit,
	})
}
