package model

import (
	"time"

	"gorm.io/gorm"
)

// Shipment statuses.
const (
	ShipmentCreated   = "created"
	ShipmentInTransit = "in_transit"
	ShipmentDelivered = "delivered"
)

// Shipment represents a customer shipment booked through the portal. Rows are
// scoped by the billing account code carried on the session.
type Shipment struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	AccountCode  string         `json:"account_code" gorm:"type:varchar(30);index;not null"`
	TrackingCode string         `json:"tracking_code" gorm:"type:varchar(30);uniqueIndex"`
	Origin       string         `json:"origin" gorm:"type:varchar(100)"`
	Destination  string         `json:"destination" gorm:"type:varchar(100)"`
	Weight       float64        `json:"weight"`
	Pieces       int            `json:"pieces"`
	Status       string         `json:"status" gorm:"type:varchar(20);default:'created'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
