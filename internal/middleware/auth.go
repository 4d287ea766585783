package middleware

import (
	"net/http"
	"strings"

	"github.com/M5Csoftware/m5c-portal-api/internal/auth"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"
	"github.com/M5Csoftware/m5c-portal-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	sessionKey = "session"
	claimsKey  = "session_claims"
)

// Auth validates the session token from the Authorization header and projects
// the session facade into the request context. Handlers read the facade only;
// the raw claim set stays inside this subsystem (the refresh endpoint is the
// one consumer, via ClaimsFromContext).
func Auth(sessions *auth.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Error("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Error("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := sessions.Parse(parts[1])
			if err != nil {
				log.Error("Invalid session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(claimsKey, claims)
			c.Set(sessionKey, auth.Facade(claims))

			return next(c)
		}
	}
}

// SessionFromContext returns the session facade set by Auth.
func SessionFromContext(c echo.Context) (auth.SessionView, bool) {
	view, ok := c.Get(sessionKey).(auth.SessionView)
	return view, ok
}

// ClaimsFromContext returns the raw claim set set by Auth. Only the session
// refresh path should need this.
func ClaimsFromContext(c echo.Context) (auth.SessionClaims, bool) {
	claims, ok := c.Get(claimsKey).(auth.SessionClaims)
	return claims, ok
}

// RequireAccount rejects requests whose session carries no billing account
// code; shipment, ledger and notification routes are account-scoped.
func RequireAccount(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := SessionFromContext(c)
		if !ok || sess.AccountCode == nil || *sess.AccountCode == "" {
			logger.FromContext(c).Error("Session has no billing account")
			prometheus.RecordAuthError("no_account_code")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no billing account linked to this session"})
		}
		return next(c)
	}
}
