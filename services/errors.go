package services

import "errors"

// Validation errors are rejected synchronously without mutating state, so the
// UI can surface them and block a resubmission. Storage errors pass through
// from gorm and mean the whole transaction scope was rolled back.
var (
	ErrNotSellable        = errors.New("menu item is not sellable")
	ErrLinePaid           = errors.New("line is already paid")
	ErrLineNotFound       = errors.New("line not found")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrNothingUnpaid      = errors.New("no unpaid items to send")
	ErrEmptySelection     = errors.New("no lines selected for checkout")
	ErrCheckoutInFlight   = errors.New("checkout already in progress for this order")
	ErrTableBusy          = errors.New("table has unpaid items, checkout first or force-clear")
	ErrTakeoutTable       = errors.New("takeout is not a physical table")
	ErrTransitionConflict = errors.New("order changed underneath, reload and retry")
	ErrOrderArchived      = errors.New("order is archived")
	ErrTableOccupied      = errors.New("table already has an active order")
)
