package entity

// Order lifecycle statuses. Archived orders are terminal and only visible to
// report queries; StatusIdle is used by table records for an unoccupied table.
const (
	StatusNew      = "new"
	StatusOpen     = "open"
	StatusServed   = "served"
	StatusPaid     = "paid"
	StatusArchived = "archived"
	StatusIdle     = "idle"
)

// TakeoutTable is the reserved table identifier for walk-away orders.
// It never owns a TableRecord.
const TakeoutTable = "外帶"

// DeriveStatus computes an order's status from its current items.
// dispatched reports whether the order has ever been sent to the kitchen
// (checkout implies the kitchen has at least begun).
// Every mutator goes through here; status is never hand-computed inline.
func DeriveStatus(items []OrderItem, dispatched bool) string {
	if len(items) == 0 {
		return StatusNew
	}
	allPaid := true
	anyPaid := false
	for _, it := range items {
		if it.IsPaid {
			anyPaid = true
		} else {
			allPaid = false
		}
	}
	if allPaid {
		return StatusPaid
	}
	// a partially paid order has been on the floor even if sendTime was lost
	if dispatched || anyPaid {
		return StatusServed
	}
	return StatusOpen
}

// ActiveStatuses covers orders still on the floor (not yet archived).
func ActiveStatuses() []string {
	return []string{StatusOpen, StatusServed, StatusPaid}
}
