package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	TableNumber   string `gorm:"index" json:"table"`
	CustomerCount int    `json:"customerCount"`
	SubTotal      int64  `json:"subTotal"`
	Total         int64  `json:"total"`

	// report partition, YYYY-MM-DD of the day the order was opened
	Date string `gorm:"index" json:"date"`

	Status string `gorm:"index" json:"status"`

	SendTime   *time.Time `json:"sendTime,omitempty"`   // first kitchen dispatch, never regresses
	FinishTime *time.Time `json:"finishTime,omitempty"` // moment every item became paid

	// preload on detail/checkout paths
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// UnpaidItems returns the lines still awaiting settlement.
func (o *Order) UnpaidItems() []OrderItem {
	out := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		if !it.IsPaid {
			out = append(out, it)
		}
	}
	return out
}
