package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an append-only customer order. Total is the sum of its line totals.
type Sale struct {
	BaseModel
	CustomerName string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Total        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Items        []SaleLineItem  `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleLineItem is one product entry of a sale. Qty is in Unit, which may be a
// subdivision of the product's base unit; BaseQty is the same amount in base units.
type SaleLineItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Line      int             `gorm:"not null" json:"line"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string          `gorm:"type:varchar(255)" json:"name"`
	Qty       decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"qty"`
	Unit      string          `gorm:"type:varchar(20);not null" json:"unit"`
	BaseQty   decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"base_qty"`
	Rate      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
}

// SumTotals recomputes the sale total from its lines.
func (s *Sale) SumTotals() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Total)
	}
	s.Total = total
	return total
}
