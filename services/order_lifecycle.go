package services

import (
	"errors"
	"log"
	"time"

	"github.com/cb023725/pos-project/entity"

	"gorm.io/gorm"
)

// CheckoutResult reports what one checkout call actually did.
type CheckoutResult struct {
	OrderID       uint   `json:"orderId"`
	Status        string `json:"status"`
	AmountCharged int64  `json:"amountCharged"` // sum over lines settled in this call
	FullyPaid     bool   `json:"fullyPaid"`
}

// CheckoutPreview computes the amount due for a selection without any side
// effect, so the operator can confirm before committing. fullyPaid selects all
// unpaid lines regardless of internalIDs.
func (s *OrderService) CheckoutPreview(orderID uint, internalIDs []string, fullyPaid bool) (int64, error) {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		return 0, err
	}
	selected, err := selectLines(o, internalIDs, fullyPaid)
	if err != nil {
		return 0, err
	}
	var due int64
	for i := range o.Items {
		if selected[o.Items[i].InternalID] && !o.Items[i].IsPaid {
			due += o.Items[i].LineTotal()
		}
	}
	return due, nil
}

// Checkout settles the selected unpaid lines in one transaction: flips their
// isPaid flag, recomputes totals, derives the new status, co-writes the table
// mirror and deducts stock. Stock deduction is gated on the isPaid flag
// transitioning false→true in this call, so a duplicate or retried checkout
// never re-deducts. The printer/cash-drawer notification runs after the
// commit and its failure never rolls the settlement back.
func (s *OrderService) Checkout(orderID uint, internalIDs []string, fullyPaid bool) (*CheckoutResult, error) {
	if !fullyPaid && len(internalIDs) == 0 {
		return nil, ErrEmptySelection
	}

	// one checkout at a time per order; a double-tap gets a typed refusal
	s.mu.Lock()
	if s.inflight[orderID] {
		s.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	s.inflight[orderID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, orderID)
		s.mu.Unlock()
	}()

	now := time.Now()
	var result CheckoutResult
	var settled []entity.OrderItem

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetTx(tx, orderID)
		if err != nil {
			return err
		}
		// archival is one-way; a settled table never comes back through here
		if o.Status == entity.StatusArchived {
			return ErrOrderArchived
		}

		selected, err := selectLines(o, internalIDs, fullyPaid)
		if err != nil {
			return err
		}

		// flip exactly the selected unpaid lines; everything else keeps its
		// flags, including isSent
		settled = settled[:0]
		for i := range o.Items {
			it := &o.Items[i]
			if selected[it.InternalID] && !it.IsPaid {
				it.IsPaid = true
				settled = append(settled, *it)
			}
		}

		var subtotal int64
		for i := range o.Items {
			subtotal += o.Items[i].LineTotal()
		}

		status := entity.DeriveStatus(o.Items, true)
		if status == entity.StatusPaid && o.FinishTime == nil {
			t := now
			o.FinishTime = &t
		}
		// checkout implies the kitchen has at least begun; never regress
		if o.SendTime == nil {
			t := now
			o.SendTime = &t
		}

		if err := s.Repo.UpdateFields(tx, o.ID, map[string]any{
			"sub_total":   subtotal,
			"total":       subtotal,
			"status":      status,
			"send_time":   o.SendTime,
			"finish_time": o.FinishTime,
		}); err != nil {
			return err
		}
		if err := s.Repo.ReplaceItems(tx, o.ID, o.Items); err != nil {
			return err
		}

		o.Status = status
		if err := s.mirrorTable(tx, o); err != nil {
			return err
		}

		// exactly-once deduction: only lines whose flag transitioned above
		for _, it := range settled {
			if err := s.deductStock(tx, it.MenuItemID, it.Quantity); err != nil {
				return err
			}
		}

		var charged int64
		for _, it := range settled {
			charged += it.LineTotal()
		}
		result = CheckoutResult{
			OrderID:       o.ID,
			Status:        status,
			AmountCharged: charged,
			FullyPaid:     status == entity.StatusPaid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyDrawer(result, settled)
	s.committed()
	return &result, nil
}

// selectLines resolves the checkout selection: all unpaid lines for a full
// checkout, the given line ids for a partial one.
func selectLines(o *entity.Order, internalIDs []string, fullyPaid bool) (map[string]bool, error) {
	selected := make(map[string]bool)
	if fullyPaid {
		for _, it := range o.Items {
			if !it.IsPaid {
				selected[it.InternalID] = true
			}
		}
		return selected, nil
	}
	byID := make(map[string]bool, len(o.Items))
	for _, it := range o.Items {
		byID[it.InternalID] = true
	}
	for _, id := range internalIDs {
		if !byID[id] {
			return nil, ErrLineNotFound
		}
		selected[id] = true
	}
	return selected, nil
}

// deductStock subtracts one settled line from the menu item's own stock and
// from every raw ingredient it consumes, flooring at zero.
func (s *OrderService) deductStock(tx *gorm.DB, menuItemID string, qty int) error {
	if err := s.MenuRepo.DeductStock(tx, menuItemID, qty); err != nil {
		return err
	}
	m, err := s.MenuRepo.GetTx(tx, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// menu item deleted after the line was snapshotted; nothing to deduct
			return nil
		}
		return err
	}
	for _, ingredientID := range m.Consumes {
		if err := s.MenuRepo.DeductStock(tx, ingredientID, qty); err != nil {
			return err
		}
	}
	return nil
}

// notifyDrawer sends the receipt and drawer pulse, fire-and-forget.
func (s *OrderService) notifyDrawer(res CheckoutResult, settled []entity.OrderItem) {
	if s.Printer == nil || len(settled) == 0 {
		return
	}
	o, err := s.Repo.Get(res.OrderID)
	if err != nil {
		log.Printf("printer: load order %d failed: %v", res.OrderID, err)
		return
	}
	receipt := Receipt{
		TableNumber: o.TableNumber,
		Items:       settled,
		Total:       res.AmountCharged,
	}
	go func() {
		if err := s.Printer.PrintReceipt(receipt); err != nil {
			log.Printf("printer: receipt for order %d failed: %v", res.OrderID, err)
		}
		if err := s.Printer.OpenDrawer(); err != nil {
			log.Printf("printer: drawer for order %d failed: %v", res.OrderID, err)
		}
	}()
}

// ----- table lifecycle -----

// ReserveTable marks a table occupied before the first item is chosen, so
// elapsed-time accounting starts without fabricating an empty order. Refused
// while the mirror still points at a live order; a stale mirror left by an
// archived order may be overwritten.
func (s *OrderService) ReserveTable(tableNumber string) error {
	if tableNumber == "" || tableNumber == entity.TakeoutTable {
		return ErrTakeoutTable
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.TableRepo.Get(tx, tableNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if rec != nil && rec.OrderID != nil {
			o, err := s.Repo.GetTx(tx, *rec.OrderID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if o != nil && o.Status != entity.StatusArchived {
				return ErrTableOccupied
			}
		}
		return s.TableRepo.Upsert(tx, &entity.TableRecord{
			TableNumber:   tableNumber,
			Status:        entity.StatusOpen,
			OrderID:       nil,
			LastOrderTime: time.Now(),
		})
	})
	if err != nil {
		return err
	}
	s.committed()
	return nil
}

// ResetTable clears a table back to idle. Allowed when the table has no
// order, a bare reservation, or a fully paid order; a paid order is relabeled
// archived first so it leaves the active set but stays reachable for reports.
// Refused while unpaid items remain; use ForceClearTable to override.
func (s *OrderService) ResetTable(tableNumber string) error {
	if tableNumber == "" || tableNumber == entity.TakeoutTable {
		return ErrTakeoutTable
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.TableRepo.Get(tx, tableNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if rec != nil && rec.OrderID != nil {
			o, err := s.Repo.GetTx(tx, *rec.OrderID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if o != nil {
				switch {
				case o.Status == entity.StatusArchived:
					// stale mirror, nothing to do
				case o.Status == entity.StatusPaid:
					affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, entity.StatusPaid, entity.StatusArchived)
					if err != nil {
						return err
					}
					if affected == 0 {
						return ErrTransitionConflict
					}
				case o.Status == entity.StatusNew && len(o.Items) == 0:
					// bare reservation, nothing owed
				default:
					return ErrTableBusy
				}
			}
		}

		return s.TableRepo.Reset(tx, tableNumber)
	})
	if err != nil {
		return err
	}
	s.committed()
	return nil
}

// ForceClearTable is the operator override: archives the table's order even
// with unpaid items, discarding pending charges, then clears the mirror. A
// separately confirmed action, never the default reset.
func (s *OrderService) ForceClearTable(tableNumber string) error {
	if tableNumber == "" || tableNumber == entity.TakeoutTable {
		return ErrTakeoutTable
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.TableRepo.Get(tx, tableNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if rec != nil && rec.OrderID != nil {
			if err := s.Repo.UpdateFields(tx, *rec.OrderID, map[string]any{
				"status": entity.StatusArchived,
			}); err != nil {
				return err
			}
		}
		return s.TableRepo.Reset(tx, tableNumber)
	})
	if err != nil {
		return err
	}
	s.committed()
	return nil
}
