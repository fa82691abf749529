package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cb023725/pos-project/entity"
)

// OrderDraft is the ordering screen's working copy of one table's order. It is
// owned by the UI session and carries no ambient state; the lifecycle service
// receives it by value on save/send and nothing is persisted until then.
type OrderDraft struct {
	OrderID       *uint  `json:"orderId"`
	TableNumber   string `json:"table"`
	CustomerCount int    `json:"customerCount"`

	Items []entity.OrderItem `json:"items"`
}

func NewOrderDraft(tableNumber string, customerCount int) *OrderDraft {
	if customerCount < 1 {
		customerCount = 1
	}
	return &OrderDraft{TableNumber: tableNumber, CustomerCount: customerCount}
}

// AddItem merges into an existing unpaid line for the same menu item, or
// appends a new quantity-1 line with a fresh line id. Paid lines are never
// merged into; re-ordering a settled dish starts a new line.
func (d *OrderDraft) AddItem(m *entity.MenuItem) error {
	if !m.Sellable() {
		return ErrNotSellable
	}
	for i := range d.Items {
		if d.Items[i].MenuItemID == m.ID && !d.Items[i].IsPaid {
			d.Items[i].Quantity++
			return nil
		}
	}
	d.Items = append(d.Items, entity.OrderItem{
		MenuItemID: m.ID,
		Name:       m.Name,
		Price:      *m.Price, // snapshot; later menu edits never touch this line
		Quantity:   1,
		Category:   m.Category,
		SortOrder:  m.SortOrder,
		InternalID: newInternalID(),
		IsSent:     false,
		IsPaid:     false,
	})
	return nil
}

// ChangeQuantity sets a line's quantity. Paid lines are locked; a quantity of
// zero or less removes the line. isSent is never altered by quantity changes.
func (d *OrderDraft) ChangeQuantity(internalID string, newQty int) error {
	for i := range d.Items {
		if d.Items[i].InternalID != internalID {
			continue
		}
		if d.Items[i].IsPaid {
			return ErrLinePaid
		}
		if newQty <= 0 {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return nil
		}
		d.Items[i].Quantity = newQty
		return nil
	}
	return ErrLineNotFound
}

// ToggleSent flips the kitchen annotation on a line. Informational only.
func (d *OrderDraft) ToggleSent(internalID string) error {
	for i := range d.Items {
		if d.Items[i].InternalID == internalID {
			d.Items[i].IsSent = !d.Items[i].IsSent
			return nil
		}
	}
	return ErrLineNotFound
}

func (d *OrderDraft) Subtotal() int64 {
	var sum int64
	for i := range d.Items {
		sum += d.Items[i].LineTotal()
	}
	return sum
}

func (d *OrderDraft) UnpaidItems() []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		if !it.IsPaid {
			out = append(out, it)
		}
	}
	return out
}

// DraftFromOrder rebuilds a draft from a persisted order, backfilling line ids
// for rows written before internal ids existed.
func DraftFromOrder(o *entity.Order) *OrderDraft {
	d := &OrderDraft{
		OrderID:       &o.ID,
		TableNumber:   o.TableNumber,
		CustomerCount: o.CustomerCount,
		Items:         make([]entity.OrderItem, len(o.Items)),
	}
	copy(d.Items, o.Items)
	for i := range d.Items {
		if d.Items[i].InternalID == "" {
			d.Items[i].InternalID = newInternalID()
		}
	}
	return d
}

func newInternalID() string {
	return fmt.Sprintf("%d-%06x", time.Now().UnixMilli(), rand.Intn(1<<24))
}
