// Package pricing converts quantities entered in a display unit into the
// product's base unit and prices them from a per-base-unit rate.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveQty  = errors.New("quantity must be greater than zero")
	ErrMissingBaseUnit = errors.New("product has no base unit")
	ErrUnitNotAllowed  = errors.New("unit not allowed for product")
	ErrQtyTooSmall     = errors.New("quantity is below the smallest stock amount")
)

// QuantityScale is the number of decimal places stock quantities are kept to.
const QuantityScale = 3

// RoundQuantity rounds a base quantity to QuantityScale places.
func RoundQuantity(qty decimal.Decimal) decimal.Decimal {
	return qty.Round(QuantityScale)
}

// Quotation is the outcome of pricing one line. Err is nil for a valid line;
// an invalid line carries zero BaseQty and Total. BaseQty is rounded to
// QuantityScale places and Total is priced from the rounded amount.
type Quotation struct {
	Rate    decimal.Decimal
	Qty     decimal.Decimal
	Unit    Unit
	Base    Unit
	BaseQty decimal.Decimal
	Total   decimal.Decimal
	Err     error
}

// Valid reports whether the line could be priced.
func (q Quotation) Valid() bool {
	return q.Err == nil
}

// Reason is the validation message for an invalid line, empty when valid.
func (q Quotation) Reason() string {
	if q.Err == nil {
		return ""
	}
	return q.Err.Error()
}

// Quote prices qty entered in display for a product priced at rate per base unit.
func Quote(rate, qty decimal.Decimal, display, base Unit) Quotation {
	q := Quotation{
		Rate:    rate,
		Qty:     qty,
		Unit:    display,
		Base:    base,
		BaseQty: decimal.Zero,
		Total:   decimal.Zero,
	}

	switch {
	case !qty.IsPositive():
		q.Err = ErrNonPositiveQty
		return q
	case base == "":
		q.Err = ErrMissingBaseUnit
		return q
	}

	divisor, ok := divisors[base][display]
	if !ok {
		q.Err = fmt.Errorf("%w: %q is not one of %v", ErrUnitNotAllowed, display, AllowedUnits(base))
		return q
	}

	baseQty := RoundQuantity(qty.Div(divisor))
	if !baseQty.IsPositive() {
		q.Err = fmt.Errorf("%w: %s %s", ErrQtyTooSmall, qty, display)
		return q
	}

	q.BaseQty = baseQty
	q.Total = rate.Mul(q.BaseQty).Round(2)
	return q
}

// ToBaseQuantity converts qty in display into the base unit. Invalid
// combinations yield zero rather than an error.
func ToBaseQuantity(qty decimal.Decimal, display, base Unit) decimal.Decimal {
	return Quote(decimal.Zero, qty, display, base).BaseQty
}

// ComputeLineTotal prices one line rounded to 2 decimals. Invalid
// combinations yield zero rather than an error.
func ComputeLineTotal(rate, qty decimal.Decimal, display, base Unit) decimal.Decimal {
	return Quote(rate, qty, display, base).Total
}
