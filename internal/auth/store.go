package auth

import (
	"context"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"
)

// UserStore is the read/flip surface the auth core needs over portal accounts.
// Lookups return (nil, nil) when no record matches; a miss is not an error at
// this layer, callers decide what it means.
type UserStore interface {
	// FindByIdentifier resolves a normalized login identifier against email,
	// phone and account code, in that precedence order.
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// SetVerified flips the verified flag. The write is idempotent in value,
	// so repeated verification of a still-valid token is harmless.
	SetVerified(ctx context.Context, userID uint) error
}

// CustomerStore resolves billing accounts by email.
type CustomerStore interface {
	FindByEmail(ctx context.Context, email string) (*model.CustomerAccount, error)
}
