package auth

import "errors"

// Identity errors: terminal for the login attempt and surfaced verbatim so
// the portal can show a named reason.
var (
	ErrUserNotRegistered  = errors.New("user not registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors: terminal for the single verification attempt. The remedy is
// always to request a new verification email; "tampered" and "expired" are
// not distinguished at this interface.
var (
	ErrTokenMissing          = errors.New("token missing")
	ErrTokenInvalidOrExpired = errors.New("invalid or expired token")
	ErrTokenSessionMismatch  = errors.New("token does not match current session")
)
