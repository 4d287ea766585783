package handler

import (
	"net/http"

	"github.com/M5Csoftware/m5c-portal-api/internal/middleware"
	"github.com/M5Csoftware/m5c-portal-api/internal/model"
	"github.com/M5Csoftware/m5c-portal-api/pkg/database"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"
	"github.com/M5Csoftware/m5c-portal-api/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ShipmentRequest defines the structure for shipment creation requests
type ShipmentRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
	Pieces      int     `json:"pieces"`
}

// CreateShipment books a new shipment on the session's billing account
func CreateShipment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordShipmentOperation("create")

	sess, _ := middleware.SessionFromContext(c)

	var req ShipmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid shipment request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Origin == "" || req.Destination == "" {
		log.Error("Incomplete shipment data",
			zap.String("origin", req.Origin),
			zap.String("destination", req.Destination))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination are required"})
	}

	shipment := model.Shipment{
		AccountCode:  *sess.AccountCode,
		TrackingCode: ulid.Make().String(),
		Origin:       req.Origin,
		Destination:  req.Destination,
		Weight:       req.Weight,
		Pieces:       req.Pieces,
		Status:       model.ShipmentCreated,
	}

	result := database.GetDB().WithContext(c.Request().Context()).Create(&shipment)
	if result.Error != nil {
		log.Error("Failed to create shipment", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create shipment"})
	}

	log.Info("Shipment created",
		zap.Uint("shipment_id", shipment.ID),
		zap.String("tracking_code", shipment.TrackingCode),
		zap.String("account_code", shipment.AccountCode))
	return c.JSON(http.StatusCreated, shipment)
}

// ListShipments returns the account's shipments with optional status filtering
func ListShipments(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordShipmentOperation("list")

	sess, _ := middleware.SessionFromContext(c)

	query := database.GetDB().WithContext(c.Request().Context()).
		Where("account_code = ?", *sess.AccountCode)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var shipments []model.Shipment
	result := query.Order("created_at DESC").Find(&shipments)
	if result.Error != nil {
		log.Error("Failed to list shipments", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve shipments"})
	}

	log.Info("Shipments retrieved", zap.Int("count", len(shipments)))
	return c.JSON(http.StatusOK, shipments)
}

// GetShipment returns a single shipment, scoped to the session's account
func GetShipment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordShipmentOperation("get")

	sess, _ := middleware.SessionFromContext(c)
	id := c.Param("id")

	var shipment model.Shipment
	result := database.GetDB().WithContext(c.Request().Context()).
		Where("account_code = ?", *sess.AccountCode).
		First(&shipment, id)
	if result.Error != nil {
		log.Error("Shipment not found", zap.String("shipment_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "shipment not found"})
	}

	return c.JSON(http.StatusOK, shipment)
}
