package repository

import (
	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(purchase *model.PurchaseRecord) error
	FindAll() ([]model.PurchaseRecord, error)
	FindByID(id uuid.UUID) (*model.PurchaseRecord, error)
	WithTx(tx *gorm.DB) PurchaseRepository
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) WithTx(tx *gorm.DB) PurchaseRepository {
	return &purchaseRepo{tx}
}

func (r *purchaseRepo) Create(purchase *model.PurchaseRecord) error {
	return r.db.Omit("Product").Create(purchase).Error
}

// FindAll returns purchases newest first
func (r *purchaseRepo) FindAll() ([]model.PurchaseRecord, error) {
	var purchases []model.PurchaseRecord
	err := r.db.Preload("Product").Order("date DESC").Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseRecord, error) {
	var purchase model.PurchaseRecord
	if err := r.db.Preload("Product").First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}
