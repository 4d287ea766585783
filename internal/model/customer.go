package model

import (
	"time"

	"gorm.io/gorm"
)

// CustomerAccount is the authoritative billing-identity record, maintained by
// the billing side independently of portal signups. It is linked to a User
// only by email value; when one exists for a user's email, its account code
// and branch take precedence in the session claims.
type CustomerAccount struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Email       string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	AccountCode string         `json:"account_code" gorm:"type:varchar(30);index"`
	Branch      string         `json:"branch" gorm:"type:varchar(50)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
