package store

import (
	"context"
	"errors"
	"strings"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"

	"gorm.io/gorm"
)

// Customers is the gorm-backed billing-account store.
type Customers struct {
	db *gorm.DB
}

func NewCustomers(db *gorm.DB) *Customers {
	return &Customers{db: db}
}

// FindByEmail returns the billing account for the given email, or nil when
// none exists.
func (s *Customers) FindByEmail(ctx context.Context, email string) (*model.CustomerAccount, error) {
	var customer model.CustomerAccount
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
