package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// VerificationClaims binds an email address and user id into a signed,
// time-bound email-verification token.
type VerificationClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// VerificationTokens issues and verifies email-verification tokens. Validity
// is entirely signature plus embedded expiry; nothing is persisted and there
// is no revocation list.
type VerificationTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewVerificationTokens(secret string, ttl time.Duration) *VerificationTokens {
	return &VerificationTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token embedding the email and user id, expiring
// ttl after issuance.
func (t *VerificationTokens) Issue(email string, userID uint) (string, error) {
	issuedAt := t.now()
	claims := VerificationClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify validates the signature and expiry and recovers the claims. Any
// failure collapses into ErrTokenInvalidOrExpired.
func (t *VerificationTokens) Verify(tokenString string) (*VerificationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VerificationClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalidOrExpired
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalidOrExpired
	}

	claims, ok := token.Claims.(*VerificationClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalidOrExpired
	}

	return claims, nil
}
