package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// InventoryCategory marks raw-ingredient records that only exist for stock
// tracking and are never offered for ordering.
const InventoryCategory = "庫存"

// StringList stores a list of ids as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// MenuItem is owned by the menu/inventory collaborator. The lifecycle engine
// reads it for price snapshots and mutates only Stock during checkout.
type MenuItem struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Category string `gorm:"index" json:"category"`

	// nil price marks a non-sellable raw-stock record
	Price *int64 `json:"price"`

	// nil stock means untracked
	Stock *int `json:"stock"`

	// raw-ingredient ids consumed per unit sold
	Consumes StringList `gorm:"type:text" json:"consumes"`

	SortOrder int    `json:"sortOrder"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Sellable reports whether the item may appear on the ordering screen.
func (m *MenuItem) Sellable() bool {
	return m.Price != nil && m.Category != InventoryCategory
}
