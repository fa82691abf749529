package entity

import (
	"time"
)

// TableRecord is a pure mirror of its current order's status, denormalized so
// the table-overview screen renders without touching the orders collection.
// It must be upserted in the same transaction as any order mutation.
type TableRecord struct {
	TableNumber   string    `gorm:"primaryKey" json:"tableNumber"`
	Status        string    `json:"status"`
	OrderID       *uint     `json:"orderId"`
	LastOrderTime time.Time `json:"lastOrderTime"`
}
