package handler

import (
	"net/http"
	"time"

	"github.com/M5Csoftware/m5c-portal-api/internal/middleware"
	"github.com/M5Csoftware/m5c-portal-api/internal/model"
	"github.com/M5Csoftware/m5c-portal-api/pkg/database"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"
	"github.com/M5Csoftware/m5c-portal-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the current user's account record
func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var user model.User
	result := database.GetDB().WithContext(c.Request().Context()).First(&user, sess.UserID)
	if result.Error != nil {
		log.Error("Profile not found", zap.Uint("user_id", sess.UserID), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the mutable profile fields (full name, phone)
func UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		FullName *string `json:"full_name,omitempty"`
		Phone    *string `json:"phone,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.FullName != nil && *req.FullName != "" {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().WithContext(c.Request().Context()).
		Model(&model.User{}).
		Where("id = ?", sess.UserID).
		Updates(updates)
	if result.Error != nil {
		log.Error("Failed to update profile", zap.Uint("user_id", sess.UserID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	log.Info("Profile updated", zap.Uint("user_id", sess.UserID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated"})
}

// ChangePassword verifies the current password and stores a new hash
func ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing fields"})
	}

	var user model.User
	result := database.GetDB().WithContext(c.Request().Context()).First(&user, sess.UserID)
	if result.Error != nil {
		log.Error("User not found", zap.Uint("user_id", sess.UserID), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		log.Error("Current password mismatch", zap.Uint("user_id", sess.UserID))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().WithContext(c.Request().Context()).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("password_hash", string(hash)).Error; err != nil {
		log.Error("Failed to update password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}

	log.Info("Password changed", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed"})
}
