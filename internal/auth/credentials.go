package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the minimal projection returned by a successful credential
// check. It feeds the first session-claims construction and is never exposed
// past that point.
type Identity struct {
	UserID      uint
	Email       string
	FullName    string
	Status      string
	AccountCode *string
	RememberMe  bool
}

// CredentialVerifier resolves a login identifier to exactly one portal
// account and checks the submitted password against the stored bcrypt hash.
type CredentialVerifier struct {
	users UserStore
	log   *zap.Logger
}

func NewCredentialVerifier(users UserStore, log *zap.Logger) *CredentialVerifier {
	return &CredentialVerifier{users: users, log: log}
}

// Verify accepts any of the account's identifiers (email, phone, account
// code), case-insensitively. rememberMe is the raw boundary value; forms send
// "on" and JSON clients send true.
func (v *CredentialVerifier) Verify(ctx context.Context, identifier, password string, rememberMe any) (*Identity, error) {
	normalized := strings.ToLower(strings.TrimSpace(identifier))

	user, err := v.users.FindByIdentifier(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("identifier lookup: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotRegistered
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		v.log.Debug("password mismatch", zap.Uint("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		UserID:      user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Status:      user.Status,
		AccountCode: user.AccountCode,
		RememberMe:  ParseRememberMe(rememberMe),
	}, nil
}

// ParseRememberMe interprets the raw "remember me" value from the login
// boundary. Only boolean true and the checkbox value "on" count; everything
// else, including absence, is false.
func ParseRememberMe(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "on"
	default:
		return false
	}
}
