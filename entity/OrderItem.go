package entity

import (
	"gorm.io/gorm"
)

// OrderItem is one line of an order. Name/price/category are snapshotted from
// the menu at add-time so later menu edits never change a historical order.
type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"index" json:"orderId"`

	MenuItemID string `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	Category   string `json:"category"`
	SortOrder  int    `json:"sortOrder"`

	// line id, unique within the order; survives re-saves
	InternalID string `gorm:"index" json:"internalId"`

	IsSent bool `json:"isSent"` // kitchen annotation, informational only
	IsPaid bool `json:"isPaid"` // financial settlement marker
}

func (it *OrderItem) LineTotal() int64 {
	return it.Price * int64(it.Quantity)
}
