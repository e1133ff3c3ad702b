package repository

import (
	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	WithTx(tx *gorm.DB) SaleRepository
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) WithTx(tx *gorm.DB) SaleRepository {
	return &saleRepo{tx}
}

// Create inserts the sale together with its line items
func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Create(sale).Error
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("line ASC")
}

// FindAll returns sales newest first
func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items", orderedItems).Order("date DESC").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items", orderedItems).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}
