package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a portal message shown to an account (shipment updates,
// billing notices and the like).
type Notification struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	AccountCode string         `json:"account_code" gorm:"type:varchar(30);index;not null"`
	Title       string         `json:"title" gorm:"type:varchar(150)"`
	Body        string         `json:"body" gorm:"type:text"`
	Read        bool           `json:"read" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
