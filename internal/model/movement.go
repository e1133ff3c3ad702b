package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockMovement is the ledger entry written alongside every stock counter change.
type StockMovement struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Type      MovementType    `gorm:"type:varchar(10);not null" json:"type"`
	Quantity  decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity"` // base units
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Reference uuid.UUID       `gorm:"type:uuid;index" json:"reference"` // sale or purchase id
	Note      string          `json:"note"`
}
