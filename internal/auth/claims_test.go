package auth

import (
	"context"
	"testing"
	"time"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSessionTTL  = 24 * time.Hour
	testExtendedTTL = 7 * 24 * time.Hour
)

func newTestAssembler(users UserStore, customers CustomerStore) *ClaimsAssembler {
	return NewClaimsAssembler(users, customers, testSessionTTL, testExtendedTTL, zap.NewNop())
}

func userWithCode(code string) *model.User {
	u := &model.User{
		ID:       1,
		Email:    "a@x.com",
		FullName: "Alice Carrier",
		Status:   model.StatusApproved,
		Verified: true,
	}
	if code != "" {
		u.AccountCode = &code
	}
	return u
}

func TestRefresh_FirstConstruction(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			require.Equal(t, "a@x.com", email)
			return userWithCode("U1"), nil
		},
	}
	customers := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return nil, nil
		},
	}
	a := newTestAssembler(users, customers)

	claims := a.Refresh(context.Background(), SessionClaims{}, &Identity{
		UserID: 1, Email: "a@x.com", RememberMe: false,
	})

	require.Equal(t, uint(1), claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "Alice Carrier", claims.FullName)
	require.Equal(t, model.StatusApproved, claims.Status)
	require.True(t, claims.Verified)
	require.NotNil(t, claims.AccountCode)
	require.Equal(t, "U1", *claims.AccountCode)
	require.Nil(t, claims.Branch)
	require.Equal(t, testSessionTTL, claims.MaxAge)
}

func TestRefresh_RememberMeExpiry(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return userWithCode(""), nil
		},
	}
	customers := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return nil, nil
		},
	}
	a := newTestAssembler(users, customers)

	extended := a.Refresh(context.Background(), SessionClaims{}, &Identity{Email: "a@x.com", RememberMe: true})
	require.Equal(t, 7*24*3600*time.Second, extended.MaxAge)

	regular := a.Refresh(context.Background(), SessionClaims{}, &Identity{Email: "a@x.com", RememberMe: false})
	require.Equal(t, 24*3600*time.Second, regular.MaxAge)
}

func TestRefresh_CustomerRecordWins(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return userWithCode("U1"), nil
		},
	}
	customers := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return &model.CustomerAccount{Email: "a@x.com", AccountCode: "C1", Branch: "RIX"}, nil
		},
	}
	a := newTestAssembler(users, customers)

	claims := a.Refresh(context.Background(), SessionClaims{}, &Identity{Email: "a@x.com"})
	require.NotNil(t, claims.AccountCode)
	require.Equal(t, "C1", *claims.AccountCode)
	require.NotNil(t, claims.Branch)
	require.Equal(t, "RIX", *claims.Branch)
}

func TestRefresh_RevertsToUserCodeWhenCustomerGone(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return userWithCode("U1"), nil
		},
	}
	gone := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return nil, nil
		},
	}
	a := newTestAssembler(users, gone)

	code := "C1"
	current := SessionClaims{Email: "a@x.com", AccountCode: &code, MaxAge: testSessionTTL}

	claims := a.Refresh(context.Background(), current, nil)
	require.NotNil(t, claims.AccountCode)
	require.Equal(t, "U1", *claims.AccountCode)
}

func TestRefresh_PicksUpCustomerCreatedAfterLogin(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return userWithCode("U1"), nil
		},
	}

	var customer *model.CustomerAccount
	customers := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return customer, nil
		},
	}
	a := newTestAssembler(users, customers)

	claims := a.Refresh(context.Background(), SessionClaims{}, &Identity{Email: "a@x.com"})
	require.Equal(t, "U1", *claims.AccountCode)

	// Billing creates the record after login; the next cycle sees it.
	customer = &model.CustomerAccount{Email: "a@x.com", AccountCode: "C1", Branch: "RIX"}

	claims = a.Refresh(context.Background(), claims, nil)
	require.Equal(t, "C1", *claims.AccountCode)
	require.Equal(t, "RIX", *claims.Branch)
}

func TestRefresh_UserLookupMissLeavesClaimsUntouched(t *testing.T) {
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, nil
		},
	}
	customers := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return nil, nil
		},
	}
	a := newTestAssembler(users, customers)

	code := "U1"
	current := SessionClaims{
		UserID:      1,
		Email:       "a@x.com",
		FullName:    "Alice Carrier",
		AccountCode: &code,
		Status:      model.StatusApproved,
		Verified:    true,
		MaxAge:      testSessionTTL,
	}

	claims := a.Refresh(context.Background(), current, nil)
	require.Equal(t, current, claims)
}

func TestRefresh_PicksUpVerifiedFlag(t *testing.T) {
	verified := false
	users := &mockUserStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Email: "a@x.com", Verified: verified}, nil
		},
	}
	customers := &mockCustomerStore{
		findByEmailFunc: func(ctx context.Context, email string) (*model.CustomerAccount, error) {
			return nil, nil
		},
	}
	a := newTestAssembler(users, customers)

	claims := a.Refresh(context.Background(), SessionClaims{}, &Identity{Email: "a@x.com"})
	require.False(t, claims.Verified)

	verified = true
	claims = a.Refresh(context.Background(), claims, nil)
	require.True(t, claims.Verified)
}

func TestRefresh_EmptyClaimsNoIdentity(t *testing.T) {
	// Nothing to refresh from: no identity, no email on the current set.
	a := newTestAssembler(&mockUserStore{}, &mockCustomerStore{})

	claims := a.Refresh(context.Background(), SessionClaims{}, nil)
	require.Equal(t, SessionClaims{}, claims)
}
