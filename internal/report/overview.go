package report

import (
	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overview summarizes the inventory.
type Overview struct {
	TotalProducts   int             `json:"total_products"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
}

func indexProducts(products []model.Product) map[uuid.UUID]*model.Product {
	idx := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		idx[products[i].ID] = &products[i]
	}
	return idx
}

// ComputeOverview counts stock records by status and values the received
// stock at purchase rate. Status uses Remaining while valuation uses Total.
func ComputeOverview(stock []model.StockRecord, products []model.Product) Overview {
	byID := indexProducts(products)

	ov := Overview{
		TotalProducts:   len(stock),
		TotalStockValue: decimal.Zero,
	}
	for _, s := range stock {
		switch StockStatus(s.Remaining) {
		case StatusOutOfStock:
			ov.OutOfStockCount++
		case StatusLowStock:
			ov.LowStockCount++
		}

		if p, ok := byID[s.ProductID]; ok {
			ov.TotalStockValue = ov.TotalStockValue.Add(p.PurchaseRate.Mul(s.Total))
		}
	}
	return ov
}
