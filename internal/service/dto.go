package service

import (
	"fmt"

	"go-dairy-admin/internal/pricing"
	"go-dairy-admin/pkg/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	if err := registerUnitValidation(); err != nil {
		panic(fmt.Sprintf("register unit validation: %v", err))
	}
}

// registerUnitValidation adds the unit tag, which accepts any known entry
// unit; whether it fits the product is checked by pricing.
func registerUnitValidation() error {
	return validator.Register("unit", func(fl playground.FieldLevel) bool {
		u := pricing.ParseUnit(fl.Field().String())
		for _, base := range pricing.BaseUnits {
			if pricing.IsAllowed(u, base) {
				return true
			}
		}
		return false
	})
}

// ProductPatch carries the editable product fields; nil fields are left unchanged.
type ProductPatch struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	PurchaseRate *decimal.Decimal `json:"purchase_rate"`
	SaleRate     *decimal.Decimal `json:"sale_rate"`
}

type PurchaseRequest struct {
	SupplierName string          `json:"supplier_name" validate:"required,min=2"`
	ProductID    uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gte=1"`
	Price        decimal.Decimal `json:"price" validate:"gte=1"`
	Date         string          `json:"date"`
}

type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Qty       decimal.Decimal `json:"qty" validate:"gt=0"`
	Unit      string          `json:"unit" validate:"omitempty,unit"`
}

type SaleRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,min=2"`
	Date         string            `json:"date"`
	Items        []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type QuoteRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Qty       decimal.Decimal `json:"qty"`
	Unit      string          `json:"unit"`
}

// QuoteResult previews one sale line. An invalid line is reported through
// Valid and Reason with zero totals rather than as an error.
type QuoteResult struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Qty       decimal.Decimal `json:"qty"`
	Unit      pricing.Unit    `json:"unit"`
	BaseUnit  pricing.Unit    `json:"base_unit"`
	BaseQty   decimal.Decimal `json:"base_qty"`
	Rate      decimal.Decimal `json:"rate"`
	Total     decimal.Decimal `json:"total"`
	Valid     bool            `json:"valid"`
	Reason    string          `json:"reason,omitempty"`
}

// StockQuery drives the stock listing.
type StockQuery struct {
	Search string
	Sort   string
	Order  string
}
