// Package report derives read-only summaries from product, stock and sale
// collections. Nothing here performs I/O or mutates its inputs; missing
// associations and empty collections degrade to zero values.
package report

import "github.com/shopspring/decimal"

type Status string

const (
	StatusOutOfStock Status = "Out of Stock"
	StatusLowStock   Status = "Low Stock"
	StatusInStock    Status = "In Stock"
)

// LowStockThreshold is the remaining quantity below which stock is low.
const LowStockThreshold = 20

var lowStockThreshold = decimal.NewFromInt(LowStockThreshold)

// StockStatus classifies a remaining base-unit quantity.
func StockStatus(remaining decimal.Decimal) Status {
	switch {
	case remaining.IsZero():
		return StatusOutOfStock
	case remaining.IsPositive() && remaining.LessThan(lowStockThreshold):
		return StatusLowStock
	default:
		return StatusInStock
	}
}
