package model

import (
	"time"

	"gorm.io/gorm"
)

// LedgerEntry is a single debit/credit line on a billing account. Entries are
// written by the billing system; the portal only reads them.
type LedgerEntry struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	AccountCode string         `json:"account_code" gorm:"type:varchar(30);index;not null"`
	Date        time.Time      `json:"date" gorm:"index"`
	Description string         `json:"description" gorm:"type:varchar(255)"`
	Reference   string         `json:"reference" gorm:"type:varchar(50)"`
	Debit       float64        `json:"debit"`
	Credit      float64        `json:"credit"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
