package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// sessionTokenClaims is the wire shape of the session JWT. MaxAge rides along
// so refresh cycles keep the lifetime chosen at login.
type sessionTokenClaims struct {
	UserID      uint    `json:"user_id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name,omitempty"`
	AccountCode *string `json:"account_code,omitempty"`
	Status      string  `json:"status,omitempty"`
	Verified    bool    `json:"verified"`
	Branch      *string `json:"branch,omitempty"`
	RememberMe  bool    `json:"remember_me,omitempty"`
	MaxAge      int64   `json:"max_age"`
	jwt.RegisteredClaims
}

// SessionManager mints and parses the session token carrying the claim set.
// It is signed with its own key, separate from the verification-token key.
type SessionManager struct {
	secret []byte
	now    func() time.Time
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret), now: time.Now}
}

// Mint signs a token for the claim set, expiring MaxAge from now.
func (m *SessionManager) Mint(claims SessionClaims) (string, error) {
	issuedAt := m.now()
	tc := sessionTokenClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		FullName:    claims.FullName,
		AccountCode: claims.AccountCode,
		Status:      claims.Status,
		Verified:    claims.Verified,
		Branch:      claims.Branch,
		RememberMe:  claims.RememberMe,
		MaxAge:      int64(claims.MaxAge / time.Second),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(claims.MaxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return token.SignedString(m.secret)
}

// Parse validates a session token and recovers the claim set.
func (m *SessionManager) Parse(tokenString string) (SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalidOrExpired
		}
		return m.secret, nil
	})
	if err != nil {
		return SessionClaims{}, ErrTokenInvalidOrExpired
	}

	tc, ok := token.Claims.(*sessionTokenClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, ErrTokenInvalidOrExpired
	}

	return SessionClaims{
		UserID:      tc.UserID,
		Email:       tc.Email,
		FullName:    tc.FullName,
		AccountCode: tc.AccountCode,
		Status:      tc.Status,
		Verified:    tc.Verified,
		Branch:      tc.Branch,
		RememberMe:  tc.RememberMe,
		MaxAge:      time.Duration(tc.MaxAge) * time.Second,
	}, nil
}
