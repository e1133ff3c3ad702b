package report

import (
	"time"

	"go-dairy-admin/internal/model"

	"github.com/shopspring/decimal"
)

// FinancialSummary rolls up revenue and purchase spending over a period.
type FinancialSummary struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
	UnitsSold decimal.Decimal `json:"units_sold"`
	Orders    int             `json:"orders"`
	Purchases int             `json:"purchases"`
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// ComputeFinancialSummary sums sales and purchases dated inside [from, to].
func ComputeFinancialSummary(sales []model.Sale, purchases []model.PurchaseRecord, from, to time.Time) FinancialSummary {
	sum := FinancialSummary{
		From:      from,
		To:        to,
		Revenue:   decimal.Zero,
		Expenses:  decimal.Zero,
		UnitsSold: decimal.Zero,
	}

	for _, sale := range sales {
		if !within(sale.Date, from, to) {
			continue
		}
		sum.Orders++
		for _, item := range sale.Items {
			sum.Revenue = sum.Revenue.Add(item.Total)
			sum.UnitsSold = sum.UnitsSold.Add(item.Qty)
		}
	}

	for _, p := range purchases {
		if !within(p.Date, from, to) {
			continue
		}
		sum.Purchases++
		sum.Expenses = sum.Expenses.Add(p.Quantity.Mul(p.Price))
	}

	sum.Profit = sum.Revenue.Sub(sum.Expenses)
	return sum
}
