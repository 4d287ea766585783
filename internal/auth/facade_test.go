package auth

import (
	"testing"
	"time"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"

	"github.com/stretchr/testify/require"
)

func TestFacade_Defaults(t *testing.T) {
	view := Facade(SessionClaims{})

	require.Equal(t, model.StatusPending, view.Status)
	require.False(t, view.Verified)
	require.Nil(t, view.AccountCode)
	require.Nil(t, view.Branch)
	require.Zero(t, view.ExpiresIn)
}

func TestFacade_Projection(t *testing.T) {
	code := "C1"
	branch := "RIX"
	view := Facade(SessionClaims{
		UserID:      5,
		Email:       "a@x.com",
		FullName:    "Alice Carrier",
		AccountCode: &code,
		Status:      model.StatusApproved,
		Verified:    true,
		Branch:      &branch,
		MaxAge:      24 * time.Hour,
	})

	require.Equal(t, uint(5), view.UserID)
	require.Equal(t, "a@x.com", view.Email)
	require.Equal(t, "Alice Carrier", view.FullName)
	require.Equal(t, "C1", *view.AccountCode)
	require.Equal(t, model.StatusApproved, view.Status)
	require.True(t, view.Verified)
	require.Equal(t, "RIX", *view.Branch)
	require.Equal(t, int64(86400), view.ExpiresIn)
}
