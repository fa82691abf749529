package repository

import (
	"github.com/cb023725/pos-project/entity"
	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Get(id string) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) GetTx(tx *gorm.DB, id string) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := tx.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListSellable returns items that may be ordered: priced, not raw inventory.
func (r *MenuRepository) ListSellable() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.
		Where("price IS NOT NULL AND category <> ?", entity.InventoryCategory).
		Order("sort_order ASC").
		Find(&items).Error
	return items, err
}

// ListInventory returns stock-tracked records: raw ingredients plus any
// sellable item carrying its own stock count.
func (r *MenuRepository) ListInventory() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.
		Where("category = ? OR stock IS NOT NULL", entity.InventoryCategory).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Update(id string, updates map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *MenuRepository) Delete(id string) error {
	return r.DB.Delete(&entity.MenuItem{}, "id = ?", id).Error
}

// DeductStock subtracts qty from a tracked stock count, flooring at zero.
// Untracked records (stock IS NULL) are left alone.
func (r *MenuRepository) DeductStock(tx *gorm.DB, id string, qty int) error {
	return tx.Model(&entity.MenuItem{}).
		Where("id = ? AND stock IS NOT NULL", id).
		Update("stock", gorm.Expr("MAX(stock - ?, 0)", qty)).Error
}
