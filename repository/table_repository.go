package repository

import (
	"time"

	"github.com/cb023725/pos-project/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Get(tx *gorm.DB, tableNumber string) (*entity.TableRecord, error) {
	var t entity.TableRecord
	if err := tx.First(&t, "table_number = ?", tableNumber).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List() ([]entity.TableRecord, error) {
	var tables []entity.TableRecord
	err := r.DB.Order("table_number ASC").Find(&tables).Error
	return tables, err
}

// Upsert writes the mirror record. Must run inside the same transaction as the
// order mutation it reflects.
func (r *TableRepository) Upsert(tx *gorm.DB, rec *entity.TableRecord) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "table_number"}},
		UpdateAll: true,
	}).Create(rec).Error
}

// Reset clears the mirror back to idle with no order.
func (r *TableRepository) Reset(tx *gorm.DB, tableNumber string) error {
	return r.Upsert(tx, &entity.TableRecord{
		TableNumber:   tableNumber,
		Status:        entity.StatusIdle,
		OrderID:       nil,
		LastOrderTime: time.Now(),
	})
}
