package repository

import (
	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementRepository interface {
	Create(movement *model.StockMovement) error
	FindAll() ([]model.StockMovement, error)
	FindByProductID(productID uuid.UUID) ([]model.StockMovement, error)
	WithTx(tx *gorm.DB) MovementRepository
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

func (r *movementRepo) WithTx(tx *gorm.DB) MovementRepository {
	return &movementRepo{tx}
}

func (r *movementRepo) Create(movement *model.StockMovement) error {
	return r.db.Omit("Product").Create(movement).Error
}

func (r *movementRepo) FindAll() ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Order("created_at ASC").Find(&movements).Error
	return movements, err
}

func (r *movementRepo) FindByProductID(productID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Preload("Product").Where("product_id = ?", productID).Order("created_at ASC").Find(&movements).Error
	return movements, err
}
