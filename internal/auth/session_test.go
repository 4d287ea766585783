package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSessionSecret = "session-test-secret"

func TestSessionManager_RoundTrip(t *testing.T) {
	m := NewSessionManager(testSessionSecret)

	code := "C-9"
	branch := "RIX"
	claims := SessionClaims{
		UserID:      3,
		Email:       "a@x.com",
		FullName:    "Alice Carrier",
		AccountCode: &code,
		Status:      "approved",
		Verified:    true,
		Branch:      &branch,
		RememberMe:  true,
		MaxAge:      7 * 24 * time.Hour,
	}

	token, err := m.Mint(claims)
	require.NoError(t, err)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, claims, parsed)
}

func TestSessionManager_WrongKey(t *testing.T) {
	minted, err := NewSessionManager(testSessionSecret).Mint(SessionClaims{
		UserID: 1, Email: "a@x.com", MaxAge: time.Hour,
	})
	require.NoError(t, err)

	_, err = NewSessionManager("other-secret").Parse(minted)
	require.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestSessionManager_Expired(t *testing.T) {
	m := NewSessionManager(testSessionSecret)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Mint(SessionClaims{UserID: 1, Email: "a@x.com", MaxAge: time.Hour})
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}
