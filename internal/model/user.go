package model

import (
	"time"

	"gorm.io/gorm"
)

// Account lifecycle statuses. New signups start as pending and are moved to
// approved or rejected by the back-office approval flow, which also assigns
// the account code.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User represents a portal account. Email, phone and account code are all
// accepted as login identifiers and must each resolve to at most one record.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Phone        string         `json:"phone" gorm:"type:varchar(30);index"`
	AccountCode  *string        `json:"account_code,omitempty" gorm:"type:varchar(30);index"`
	PasswordHash string         `json:"-" gorm:"type:varchar(255)"`
	FullName     string         `json:"full_name" gorm:"type:varchar(100)"`
	AccountType  string         `json:"account_type" gorm:"type:varchar(30)"`
	Status       string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Verified     bool           `json:"verified" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
