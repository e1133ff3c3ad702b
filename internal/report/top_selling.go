package report

import (
	"go-dairy-admin/internal/model"

	"github.com/shopspring/decimal"
)

// TopSellingEntry is one product's share of all units sold.
type TopSellingEntry struct {
	Product string          `json:"product"`
	Qty     decimal.Decimal `json:"qty"`
	Percent string          `json:"percent"`
}

// PercentUndefined is rendered when nothing was sold at all.
const PercentUndefined = "NaN"

var hundred = decimal.NewFromInt(100)

// ComputeTopSelling merges sale lines by exact product name, in first-seen
// order, and computes each product's share of the total quantity to one decimal.
func ComputeTopSelling(sales []model.Sale) []TopSellingEntry {
	entries := []TopSellingEntry{}
	pos := map[string]int{}

	for _, sale := range sales {
		for _, item := range sale.Items {
			if i, ok := pos[item.Name]; ok {
				entries[i].Qty = entries[i].Qty.Add(item.Qty)
				continue
			}
			pos[item.Name] = len(entries)
			entries = append(entries, TopSellingEntry{Product: item.Name, Qty: item.Qty})
		}
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Qty)
	}

	for i := range entries {
		if total.IsZero() {
			entries[i].Percent = PercentUndefined
			continue
		}
		entries[i].Percent = entries[i].Qty.Div(total).Mul(hundred).StringFixed(1)
	}
	return entries
}
