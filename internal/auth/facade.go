package auth

import (
	"time"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"
)

// SessionView is the read-only projection of the claim set that pages and
// API routes are allowed to depend on. account_code and branch are nullable;
// status always carries a value.
type SessionView struct {
	UserID      uint    `json:"id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	AccountCode *string `json:"account_code"`
	Status      string  `json:"status"`
	Verified    bool    `json:"verified"`
	Branch      *string `json:"branch"`
	ExpiresIn   int64   `json:"expires_in"`
}

// Facade projects a claim set into the downstream view, applying the
// defaulting rules: absent status reads as pending, verified is always a
// concrete boolean.
func Facade(claims SessionClaims) SessionView {
	status := claims.Status
	if status == "" {
		status = model.StatusPending
	}

	return SessionView{
		UserID:      claims.UserID,
		Email:       claims.Email,
		FullName:    claims.FullName,
		AccountCode: claims.AccountCode,
		Status:      status,
		Verified:    claims.Verified,
		Branch:      claims.Branch,
		ExpiresIn:   int64(claims.MaxAge / time.Second),
	}
}
