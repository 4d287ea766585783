package auth

import (
	"context"
	"errors"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"
)

type mockUserStore struct {
	findByIdentifierFunc func(ctx context.Context, identifier string) (*model.User, error)
	findByEmailFunc      func(ctx context.Context, email string) (*model.User, error)
	setVerifiedFunc      func(ctx context.Context, userID uint) error
}

func (m *mockUserStore) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if m.findByIdentifierFunc != nil {
		return m.findByIdentifierFunc(ctx, identifier)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserStore) SetVerified(ctx context.Context, userID uint) error {
	if m.setVerifiedFunc != nil {
		return m.setVerifiedFunc(ctx, userID)
	}
	return errors.New("not implemented")
}

type mockCustomerStore struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.CustomerAccount, error)
}

func (m *mockCustomerStore) FindByEmail(ctx context.Context, email string) (*model.CustomerAccount, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}
