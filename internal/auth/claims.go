package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionClaims is the per-session bag of identity and billing fields derived
// from the User and CustomerAccount records. It is owned exclusively by the
// session token mechanism; everything downstream sees the facade instead.
type SessionClaims struct {
	UserID      uint
	Email       string
	FullName    string
	AccountCode *string
	Status      string
	Verified    bool
	Branch      *string
	RememberMe  bool
	MaxAge      time.Duration
}

// ClaimsAssembler derives session claims from the stores. It runs once at
// login (identity present) and again on every token refresh, so billing
// records created or changed after login are picked up on the next cycle
// without re-login.
type ClaimsAssembler struct {
	users       UserStore
	customers   CustomerStore
	log         *zap.Logger
	sessionTTL  time.Duration
	extendedTTL time.Duration
}

func NewClaimsAssembler(users UserStore, customers CustomerStore, sessionTTL, extendedTTL time.Duration, log *zap.Logger) *ClaimsAssembler {
	return &ClaimsAssembler{
		users:       users,
		customers:   customers,
		log:         log,
		sessionTTL:  sessionTTL,
		extendedTTL: extendedTTL,
	}
}

// Refresh produces the next claim set. ident is non-nil only on first
// construction after a credential check; refresh cycles pass nil and carry
// the current claims forward.
//
// Lookup misses are not errors here: a missing user leaves the existing
// fields untouched, a missing customer leaves the account code and branch as
// assembled from the user record. The two lookups are independent by intent;
// staleness between them is reconciled on the next cycle.
func (a *ClaimsAssembler) Refresh(ctx context.Context, current SessionClaims, ident *Identity) SessionClaims {
	claims := current

	if ident != nil {
		// Canonical email comes from the user record, never from whatever
		// identifier was typed at login.
		claims.Email = ident.Email
		claims.RememberMe = ident.RememberMe
		if ident.RememberMe {
			claims.MaxAge = a.extendedTTL
		} else {
			claims.MaxAge = a.sessionTTL
		}
	}

	if claims.Email == "" {
		return claims
	}

	user, err := a.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		a.log.Warn("user refresh lookup failed", zap.String("email", claims.Email), zap.Error(err))
	} else if user != nil {
		claims.UserID = user.ID
		claims.Email = user.Email
		claims.FullName = user.FullName
		claims.Status = user.Status
		claims.Verified = user.Verified
		// The user's own account code is only a fallback; it never clears a
		// value already present.
		if user.AccountCode != nil {
			claims.AccountCode = user.AccountCode
		}
	}

	customer, err := a.customers.FindByEmail(ctx, claims.Email)
	if err != nil {
		a.log.Warn("customer refresh lookup failed", zap.String("email", claims.Email), zap.Error(err))
	} else if customer != nil {
		// Billing record wins: whole-field overwrite, no partial merge.
		code := customer.AccountCode
		branch := customer.Branch
		claims.AccountCode = &code
		claims.Branch = &branch
	}

	return claims
}
