package legacy

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ID is a json-server id, which may be a number or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Product is a catalog row. Older rows carry the form field names
// costPrice and basePrice instead of purchaseRate and saleRate.
type Product struct {
	ID           ID               `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	PurchaseRate *decimal.Decimal `json:"purchaseRate"`
	SaleRate     *decimal.Decimal `json:"saleRate"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	BasePrice    *decimal.Decimal `json:"basePrice"`
}

// Rates resolves purchase and sale rates across both field spellings.
func (p Product) Rates() (purchase, sale decimal.Decimal) {
	purchase, sale = decimal.Zero, decimal.Zero
	switch {
	case p.PurchaseRate != nil:
		purchase = *p.PurchaseRate
	case p.CostPrice != nil:
		purchase = *p.CostPrice
	}
	switch {
	case p.SaleRate != nil:
		sale = *p.SaleRate
	case p.BasePrice != nil:
		sale = *p.BasePrice
	}
	return purchase, sale
}

type Stock struct {
	ID        ID              `json:"id"`
	ProductID ID              `json:"productId"`
	Total     decimal.Decimal `json:"total"`
	Sold      decimal.Decimal `json:"sold"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

type Purchase struct {
	ID           ID              `json:"id"`
	SupplierName string          `json:"supplierName"`
	ProductID    ID              `json:"productId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Date         string          `json:"date"`
}

// SaleLine covers both sale forms: one sent productId, rate and total; the
// other sent only name, unit and price.
type SaleLine struct {
	ProductID ID               `json:"productId"`
	Name      string           `json:"name"`
	Qty       decimal.Decimal  `json:"qty"`
	Unit      string           `json:"unit"`
	Rate      *decimal.Decimal `json:"rate"`
	Total     *decimal.Decimal `json:"total"`
	Price     *decimal.Decimal `json:"price"`
}

type Sale struct {
	ID           ID         `json:"id"`
	CustomerName string     `json:"customerName"`
	Date         string     `json:"date"`
	Products     []SaleLine `json:"products"`
	Product      []SaleLine `json:"product"`
}

// Lines returns the sale's lines whichever key they were stored under.
func (s Sale) Lines() []SaleLine {
	if len(s.Products) > 0 {
		return s.Products
	}
	return s.Product
}
