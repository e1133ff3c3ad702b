package report

import (
	"slices"
	"strings"

	"go-dairy-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRow is a stock record joined with its product for listing.
// Name, Category and Unit are blank when the product cannot be resolved.
type StockRow struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Total     decimal.Decimal `json:"total"`
	Sold      decimal.Decimal `json:"sold"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    Status          `json:"status"`
}

type SortKey string

const (
	SortByName      SortKey = "name"
	SortByCategory  SortKey = "category"
	SortByRemaining SortKey = "remaining"
)

type SortOrder string

const (
	OrderDefault SortOrder = "default"
	OrderAsc     SortOrder = "asc"
	OrderDesc    SortOrder = "desc"
)

// BuildStockRows joins stock with products and classifies each row.
func BuildStockRows(stock []model.StockRecord, products []model.Product) []StockRow {
	byID := indexProducts(products)
	rows := make([]StockRow, 0, len(stock))
	for _, s := range stock {
		row := StockRow{
			ID:        s.ID,
			ProductID: s.ProductID,
			Total:     s.Total,
			Sold:      s.Sold,
			Remaining: s.Remaining,
			Status:    StockStatus(s.Remaining),
		}
		if p, ok := byID[s.ProductID]; ok {
			row.Name = p.Name
			row.Category = p.Category
			row.Unit = p.Unit
		}
		rows = append(rows, row)
	}
	return rows
}

// FilterStockRows keeps rows whose name or category contains search,
// case-insensitively. An empty search keeps everything.
func FilterStockRows(rows []StockRow, search string) []StockRow {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]StockRow, 0, len(rows))
	for _, r := range rows {
		if needle == "" ||
			strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Category), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortStockRows returns a sorted copy. OrderDefault, or an unknown key,
// keeps the input order.
func SortStockRows(rows []StockRow, key SortKey, order SortOrder) []StockRow {
	out := slices.Clone(rows)
	if order != OrderAsc && order != OrderDesc {
		return out
	}

	var cmp func(a, b StockRow) int
	switch key {
	case SortByName:
		cmp = func(a, b StockRow) int { return compareText(a.Name, b.Name) }
	case SortByCategory:
		cmp = func(a, b StockRow) int { return compareText(a.Category, b.Category) }
	case SortByRemaining:
		cmp = func(a, b StockRow) int { return a.Remaining.Cmp(b.Remaining) }
	default:
		return out
	}

	if order == OrderDesc {
		asc := cmp
		cmp = func(a, b StockRow) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// RestockList returns the rows that are low or out of stock.
func RestockList(rows []StockRow) []StockRow {
	out := []StockRow{}
	for _, r := range rows {
		if r.Status != StatusInStock {
			out = append(out, r)
		}
	}
	return out
}
