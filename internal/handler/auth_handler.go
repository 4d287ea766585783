package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/M5Csoftware/m5c-portal-api/internal/auth"
	"github.com/M5Csoftware/m5c-portal-api/internal/mailer"
	"github.com/M5Csoftware/m5c-portal-api/internal/middleware"
	"github.com/M5Csoftware/m5c-portal-api/internal/model"
	"github.com/M5Csoftware/m5c-portal-api/internal/store"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"
	"github.com/M5Csoftware/m5c-portal-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler is the HTTP boundary over the auth core: signup, login, email
// verification and session refresh.
type AuthHandler struct {
	users     *store.Users
	verifier  *auth.CredentialVerifier
	assembler *auth.ClaimsAssembler
	sessions  *auth.SessionManager
	tokens    *auth.VerificationTokens
	mail      mailer.Mailer
}

func NewAuthHandler(
	users *store.Users,
	verifier *auth.CredentialVerifier,
	assembler *auth.ClaimsAssembler,
	sessions *auth.SessionManager,
	tokens *auth.VerificationTokens,
	mail mailer.Mailer,
) *AuthHandler {
	return &AuthHandler{
		users:     users,
		verifier:  verifier,
		assembler: assembler,
		sessions:  sessions,
		tokens:    tokens,
		mail:      mail,
	}
}

// Signup creates a pending, unverified account and dispatches the
// verification email.
func (h *AuthHandler) Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req struct {
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		FullName    string `json:"full_name"`
		AccountType string `json:"account_type"`
		Password    string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.FullName == "" || req.Password == "" {
		log.Error("Incomplete signup data",
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_signup")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing fields"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.Request().Context()

	defer prometheus.TrackDBOperation("query")(time.Now())
	existing, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		log.Error("Signup lookup failed", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	if existing != nil {
		log.Error("User already exists", zap.String("email", email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		FullName:     req.FullName,
		AccountType:  req.AccountType,
		PasswordHash: string(hash),
		Status:       model.StatusPending,
		Verified:     false,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.users.Create(ctx, &user); err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	if err := h.issueAndSend(c, &user); err != nil {
		// The account exists; the portal offers resend as the remedy.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send verification email"})
	}

	log.Info("User registered", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Account created, verification email sent",
		"user": map[string]interface{}{
			"id":     user.ID,
			"email":  user.Email,
			"status": user.Status,
		},
	})
}

// Login verifies credentials, assembles the first claim set and returns the
// session token together with the session view.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// RememberMe is any: HTML forms send "on", JSON clients send true.
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
		RememberMe any    `json:"remember_me,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	defer prometheus.TrackDBOperation("query")(time.Now())
	ident, err := h.verifier.Verify(ctx, req.Identifier, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotRegistered):
			log.Error("User not registered", zap.String("identifier", req.Identifier))
			prometheus.RecordAuthError("user_not_registered")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrUserNotRegistered.Error()})
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Error("Invalid password", zap.String("identifier", req.Identifier))
			prometheus.RecordAuthError("invalid_password")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrInvalidCredentials.Error()})
		default:
			log.Error("Credential check failed", zap.Error(err))
			prometheus.RecordAuthError("db_error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
	}

	claims := h.assembler.Refresh(ctx, auth.SessionClaims{}, ident)

	token, err := h.sessions.Mint(claims)
	if err != nil {
		log.Error("Failed to mint session token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveSessions()

	log.Info("User logged in",
		zap.Uint("user_id", claims.UserID),
		zap.String("email", claims.Email),
		zap.Bool("remember_me", claims.RememberMe))

	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"session": auth.Facade(claims),
	})
}

// VerifyEmail confirms a verification token and flips the account's verified
// flag. When the request carries a session for a different user, the token is
// rejected; a request with no session at all is still accepted.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse verification request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Token == "" {
		req.Token = c.QueryParam("token")
	}

	if req.Token == "" {
		prometheus.RecordAuthError("verification_token_missing")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Token missing"})
	}

	claims, err := h.tokens.Verify(req.Token)
	if err != nil {
		log.Error("Verification token rejected", zap.Error(err))
		prometheus.RecordAuthError("verification_token_invalid")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired token"})
	}

	// Best-effort session cross-check: only fires when the request happens to
	// carry a parseable session alongside the token.
	if session, ok := h.sessionFromHeader(c); ok && session.UserID != claims.UserID {
		log.Error("Verification token does not match session",
			zap.Uint("token_user_id", claims.UserID),
			zap.Uint("session_user_id", session.UserID))
		prometheus.RecordAuthError("verification_session_mismatch")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Token does not match current session"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.users.SetVerified(c.Request().Context(), claims.UserID); err != nil {
		log.Error("Failed to set verified flag", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}

	prometheus.VerificationConfirmedCounter.Inc()
	log.Info("Email verified", zap.Uint("user_id", claims.UserID), zap.String("email", claims.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "Email verified"})
}

// ResendVerification issues a fresh token for an existing account and
// re-sends the verification email.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing fields"})
	}

	ctx := c.Request().Context()
	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Error("Resend lookup failed", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resend failed"})
	}
	if user == nil {
		prometheus.RecordAuthError("user_not_registered")
		return c.JSON(http.StatusNotFound, echo.Map{"error": auth.ErrUserNotRegistered.Error()})
	}

	if err := h.issueAndSend(c, user); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send verification email"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Verification email sent"})
}

// Refresh re-derives the claim set from the stores and mints a new session
// token with the lifetime chosen at login. Billing records created since the
// last cycle are picked up here without re-login.
func (h *AuthHandler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)

	current, ok := middleware.ClaimsFromContext(c)
	if !ok {
		prometheus.RecordAuthError("missing_token")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	claims := h.assembler.Refresh(c.Request().Context(), current, nil)

	token, err := h.sessions.Mint(claims)
	if err != nil {
		log.Error("Failed to mint session token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"session": auth.Facade(claims),
	})
}

// Session returns the facade for the current session.
func (h *AuthHandler) Session(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		prometheus.RecordAuthError("missing_token")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) issueAndSend(c echo.Context, user *model.User) error {
	log := logger.FromContext(c)

	token, err := h.tokens.Issue(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to issue verification token", zap.Error(err))
		prometheus.RecordAuthError("verification_issue_failed")
		return err
	}
	prometheus.VerificationIssuedCounter.Inc()

	if err := h.mail.SendVerification(user.Email, user.FullName, token); err != nil {
		log.Error("Failed to send verification email", zap.Error(err))
		prometheus.RecordAuthError("verification_mail_failed")
		return err
	}
	return nil
}

func (h *AuthHandler) sessionFromHeader(c echo.Context) (auth.SessionClaims, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return auth.SessionClaims{}, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return auth.SessionClaims{}, false
	}
	claims, err := h.sessions.Parse(parts[1])
	if err != nil {
		return auth.SessionClaims{}, false
	}
	return claims, true
}
