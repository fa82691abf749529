package repository

import (
	"github.com/cb023725/pos-project/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	return r.GetTx(r.DB, orderID)
}

func (r *OrderRepository) GetTx(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateFields writes the given order columns inside the caller's transaction.
func (r *OrderRepository) UpdateFields(tx *gorm.DB, orderID uint, updates map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

// ReplaceItems swaps the order's full line set. The persisted lines are always
// written wholesale so a re-save cannot resurrect removed lines.
func (r *OrderRepository) ReplaceItems(tx *gorm.DB, orderID uint, items []entity.OrderItem) error {
	if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatusGuard moves status from → to and reports how many rows matched,
// so callers can detect a lost race or an invalid transition.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ListByStatus returns orders in any of the given statuses, newest first.
func (r *OrderRepository) ListByStatus(statuses ...string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Items").
		Where("status IN ?", statuses).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// ListArchivedByDate returns archived orders for one report partition.
func (r *OrderRepository) ListArchivedByDate(date string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Items").
		Where("status = ? AND date = ?", entity.StatusArchived, date).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// ActiveOrderForTable finds the non-archived order currently occupying a table.
func (r *OrderRepository) ActiveOrderForTable(tx *gorm.DB, tableNumber string) (*entity.Order, error) {
	var o entity.Order
	err := tx.Preload("Items").
		Where("table_number = ? AND status IN ?", tableNumber, entity.ActiveStatuses()).
		Order("id DESC").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}
