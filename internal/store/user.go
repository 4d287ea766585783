package store

import (
	"context"
	"errors"
	"strings"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Users is the gorm-backed account store.
type Users struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUsers(db *gorm.DB, log *zap.Logger) *Users {
	return &Users{db: db, log: log}
}

// FindByIdentifier resolves a login identifier against email, phone and
// account code with case-insensitive exact matching. The identifier is
// expected already normalized (trimmed, lower-cased).
//
// A single query fetches every candidate; when the same value coincidentally
// matches more than one record across the three fields, resolution follows
// the fixed precedence email, phone, account code, and the anomaly is logged
// with the colliding ids.
func (s *Users) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if identifier == "" {
		return nil, nil
	}

	var matches []model.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = ? OR LOWER(phone) = ? OR LOWER(account_code) = ?", identifier, identifier, identifier).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, nil
	}

	if len(matches) > 1 {
		ids := make([]uint, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		s.log.Warn("identifier resolves to multiple accounts",
			zap.String("identifier", identifier),
			zap.Uints("user_ids", ids))
	}

	for i := range matches {
		if strings.EqualFold(matches[i].Email, identifier) {
			return &matches[i], nil
		}
	}
	for i := range matches {
		if strings.EqualFold(matches[i].Phone, identifier) {
			return &matches[i], nil
		}
	}
	return &matches[0], nil
}

// FindByEmail returns the account with the given email, or nil when none
// exists.
func (s *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account.
func (s *Users) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// SetVerified flips the verified flag to true.
func (s *Users) SetVerified(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("verified", true).Error
}
