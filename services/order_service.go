package services

import (
	"errors"
	"sync"
	"time"

	"github.com/cb023725/pos-project/entity"
	"github.com/cb023725/pos-project/repository"

	"gorm.io/gorm"
)

// ReceiptPrinter is the cash-drawer/printer collaborator. Calls are
// best-effort and happen outside the checkout transaction.
type ReceiptPrinter interface {
	PrintReceipt(r Receipt) error
	OpenDrawer() error
}

// Receipt is the finalized payload handed to the printer after a commit.
type Receipt struct {
	TableNumber string
	Items       []entity.OrderItem
	Total       int64
}

// OrderService is the order/table lifecycle engine. Every mutation writes the
// order and its table mirror in one transaction scope.
type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	MenuRepo  *repository.MenuRepository
	TableRepo *repository.TableRepository

	// optional collaborators
	Printer  ReceiptPrinter // nil disables the bridge
	OnCommit func()         // invoked after any committed mutation (table feed)

	mu       sync.Mutex
	inflight map[uint]bool
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, menuRepo *repository.MenuRepository, tableRepo *repository.TableRepository) *OrderService {
	return &OrderService{
		DB:        db,
		Repo:      repo,
		MenuRepo:  menuRepo,
		TableRepo: tableRepo,
		inflight:  make(map[uint]bool),
	}
}

// Save persists the draft without a kitchen dispatch: items, recomputed
// totals, derived status, and the table mirror, atomically. Returns the order
// id (created on first save with items).
func (s *OrderService) Save(d *OrderDraft) (uint, error) {
	if d.OrderID == nil && len(d.Items) == 0 {
		return 0, ErrEmptyOrder
	}
	return s.persistDraft(d, false)
}

// Send dispatches the order to the kitchen: same persistence as Save but the
// status moves to served and sendTime is stamped once. Refused when there is
// nothing unpaid to send.
func (s *OrderService) Send(d *OrderDraft) (uint, error) {
	if len(d.UnpaidItems()) == 0 {
		return 0, ErrNothingUnpaid
	}
	return s.persistDraft(d, true)
}

func (s *OrderService) persistDraft(d *OrderDraft, dispatch bool) (uint, error) {
	now := time.Now()

	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		items := make([]entity.OrderItem, len(d.Items))
		copy(items, d.Items)

		var o *entity.Order
		if d.OrderID != nil {
			existing, err := s.Repo.GetTx(tx, *d.OrderID)
			if err != nil {
				return err
			}
			if existing.Status == entity.StatusArchived {
				return ErrOrderArchived
			}
			items = mergeSettledLines(items, existing.Items)
			o = existing
		} else {
			if d.TableNumber != "" && d.TableNumber != entity.TakeoutTable {
				_, err := s.Repo.ActiveOrderForTable(tx, d.TableNumber)
				switch {
				case err == nil:
					return ErrTableOccupied
				case !errors.Is(err, gorm.ErrRecordNotFound):
					return err
				}
			}
			o = &entity.Order{
				TableNumber:   d.TableNumber,
				CustomerCount: d.CustomerCount,
				Date:          now.Format("2006-01-02"),
			}
		}

		var subtotal int64
		for i := range items {
			subtotal += items[i].LineTotal()
		}

		dispatched := dispatch || o.SendTime != nil
		status := entity.DeriveStatus(items, dispatched)
		if dispatch && o.SendTime == nil {
			t := now
			o.SendTime = &t
		}

		o.CustomerCount = d.CustomerCount
		o.SubTotal = subtotal
		o.Total = subtotal
		o.Status = status

		if o.ID == 0 {
			o.Items = items
			if err := s.Repo.Create(tx, o); err != nil {
				return err
			}
		} else {
			if err := s.Repo.UpdateFields(tx, o.ID, map[string]any{
				"customer_count": o.CustomerCount,
				"sub_total":      o.SubTotal,
				"total":          o.Total,
				"status":         o.Status,
				"send_time":      o.SendTime,
			}); err != nil {
				return err
			}
			if err := s.Repo.ReplaceItems(tx, o.ID, items); err != nil {
				return err
			}
		}
		orderID = o.ID

		return s.mirrorTable(tx, o)
	})
	if err != nil {
		return 0, err
	}

	id := orderID
	d.OrderID = &id
	s.committed()
	return orderID, nil
}

// mergeSettledLines restores settlement state the draft cannot know about: a
// line paid by a checkout that landed after the draft was taken keeps its
// isPaid flag, and a settled line the stale draft dropped is carried back in.
func mergeSettledLines(draft, persisted []entity.OrderItem) []entity.OrderItem {
	byID := make(map[string]int, len(draft))
	for i := range draft {
		byID[draft[i].InternalID] = i
	}
	for _, p := range persisted {
		if !p.IsPaid {
			continue
		}
		if i, ok := byID[p.InternalID]; ok {
			draft[i].IsPaid = true
		} else {
			draft = append(draft, p)
		}
	}
	return draft
}

// mirrorTable co-writes the TableRecord for the order's table inside the same
// transaction. Takeout orders own no table.
func (s *OrderService) mirrorTable(tx *gorm.DB, o *entity.Order) error {
	if o.TableNumber == "" || o.TableNumber == entity.TakeoutTable {
		return nil
	}
	id := o.ID
	last := o.CreatedAt
	if last.IsZero() {
		last = time.Now()
	}
	return s.TableRepo.Upsert(tx, &entity.TableRecord{
		TableNumber:   o.TableNumber,
		Status:        o.Status,
		OrderID:       &id,
		LastOrderTime: last,
	})
}

func (s *OrderService) committed() {
	if s.OnCommit != nil {
		s.OnCommit()
	}
}

// ----- queries -----

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	return s.Repo.Get(orderID)
}

// OrderForTable loads the order currently occupying a table, for reopening the
// ordering screen. gorm.ErrRecordNotFound when the table has none.
func (s *OrderService) OrderForTable(tableNumber string) (*entity.Order, error) {
	return s.Repo.ActiveOrderForTable(s.DB, tableNumber)
}

// ActiveOrders returns orders still on the floor: open, served or paid.
func (s *OrderService) ActiveOrders() ([]entity.Order, error) {
	return s.Repo.ListByStatus(entity.ActiveStatuses()...)
}

// ReportOrders returns archived orders. Disjoint from ActiveOrders by
// construction: archival is a one-way relabeling.
func (s *OrderService) ReportOrders() ([]entity.Order, error) {
	return s.Repo.ListByStatus(entity.StatusArchived)
}
