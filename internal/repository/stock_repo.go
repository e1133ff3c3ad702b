package repository

import (
	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	Create(stock *model.StockRecord) error
	FindAll() ([]model.StockRecord, error)
	FindByProductID(productID uuid.UUID) (*model.StockRecord, error)
	// LockByProductID loads the record with a row lock; only meaningful inside WithTx
	LockByProductID(productID uuid.UUID) (*model.StockRecord, error)
	UpdateCounters(stock *model.StockRecord, updatedBy string) error
	WithTx(tx *gorm.DB) StockRepository
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) WithTx(tx *gorm.DB) StockRepository {
	return &stockRepo{tx}
}

func (r *stockRepo) Create(stock *model.StockRecord) error {
	return r.db.Create(stock).Error
}

func (r *stockRepo) FindAll() ([]model.StockRecord, error) {
	var records []model.StockRecord
	err := r.db.Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *stockRepo) FindByProductID(productID uuid.UUID) (*model.StockRecord, error) {
	var record model.StockRecord
	if err := r.db.First(&record, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *stockRepo) LockByProductID(productID uuid.UUID) (*model.StockRecord, error) {
	var record model.StockRecord
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateCounters writes total, sold and remaining together. Remaining is
// recomputed from the other two so callers cannot persist a drifted value.
func (r *stockRepo) UpdateCounters(stock *model.StockRecord, updatedBy string) error {
	stock.Recompute()
	stock.UpdatedBy = updatedBy
	return r.db.Model(&model.StockRecord{}).
		Where("id = ?", stock.ID).
		Updates(map[string]interface{}{
			"total":      stock.Total,
			"sold":       stock.Sold,
			"remaining":  stock.Remaining,
			"updated_by": updatedBy,
		}).Error
}
