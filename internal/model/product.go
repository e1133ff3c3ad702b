package model

import (
	"go-dairy-admin/internal/pricing"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Rates are per one base unit.
type Product struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=3"`
	Category     string          `gorm:"type:varchar(100);index" json:"category" validate:"required"`
	Unit         string          `gorm:"type:varchar(20);not null" json:"unit" validate:"required,oneof=kg ltr piece packet"`
	PurchaseRate decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_rate" validate:"gt=0"`
	SaleRate     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_rate" validate:"gt=0"`
}

// BaseUnit returns the unit the product's rates are denominated in.
func (p *Product) BaseUnit() pricing.Unit {
	return pricing.ParseUnit(p.Unit)
}
