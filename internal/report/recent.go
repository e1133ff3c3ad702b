package report

import (
	"time"

	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLineRow is one sold line flattened with its sale header.
type SaleLineRow struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	Product      string          `json:"product"`
	Qty          decimal.Decimal `json:"qty"`
	Unit         string          `json:"unit"`
	Rate         decimal.Decimal `json:"rate"`
	Total        decimal.Decimal `json:"total"`
}

// RecentSaleLines flattens the first n sales, in the order given, into rows.
func RecentSaleLines(sales []model.Sale, n int) []SaleLineRow {
	if n < 0 {
		n = 0
	}
	if n > len(sales) {
		n = len(sales)
	}

	rows := []SaleLineRow{}
	for _, sale := range sales[:n] {
		for _, item := range sale.Items {
			rows = append(rows, SaleLineRow{
				SaleID:       sale.ID,
				Date:         sale.Date,
				CustomerName: sale.CustomerName,
				Product:      item.Name,
				Qty:          item.Qty,
				Unit:         item.Unit,
				Rate:         item.Rate,
				Total:        item.Total,
			})
		}
	}
	return rows
}
