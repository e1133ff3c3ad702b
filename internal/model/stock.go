package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRecord holds the running counters of one product, in base units.
// Remaining is derived: it is rewritten from Total and Sold on every mutation.
type StockRecord struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Total     decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"total"`
	Sold      decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"sold"`
	Remaining decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"remaining"`
}

func (StockRecord) TableName() string {
	return "stock_records"
}

// Receive adds qty to the received total.
func (s *StockRecord) Receive(qty decimal.Decimal) {
	s.Total = s.Total.Add(qty)
	s.Recompute()
}

// Sell adds qty to the sold counter.
func (s *StockRecord) Sell(qty decimal.Decimal) {
	s.Sold = s.Sold.Add(qty)
	s.Recompute()
}

// CanSell reports whether qty fits in what is left.
func (s *StockRecord) CanSell(qty decimal.Decimal) bool {
	return s.Total.Sub(s.Sold).GreaterThanOrEqual(qty)
}

// Recompute restores remaining = total - sold.
func (s *StockRecord) Recompute() {
	s.Remaining = s.Total.Sub(s.Sold)
}
