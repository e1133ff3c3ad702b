package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRecord is an append-only stock receipt from a supplier.
// Quantity is in base units and Price is per base unit.
type PurchaseRecord struct {
	BaseModel
	SupplierName string          `gorm:"type:varchar(255);not null" json:"supplier_name"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Total        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
}

func (PurchaseRecord) TableName() string {
	return "purchases"
}
