package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-dairy-admin/internal/model"
	"go-dairy-admin/internal/report"
	"go-dairy-admin/internal/repository"
	"go-dairy-admin/internal/service"
	"go-dairy-admin/pkg/database"
	"go-dairy-admin/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	db.NowFunc = func() time.Time { return testNow }

	clock := service.Clock(func() time.Time { return testNow })
	products := repository.NewProductRepo(db)
	stock := repository.NewStockRepo(db)
	sales := repository.NewSaleRepo(db)
	purchases := repository.NewPurchaseRepo(db)
	movements := repository.NewMovementRepo(db)

	app := fiber.New()
	SetupRoutes(app, Handlers{
		Products:  NewProductHandler(service.NewCatalogService(products, stock, db, nil)),
		Inventory: NewInventoryHandler(service.NewInventoryService(products, stock, purchases, movements, db, clock, nil)),
		Sales:     NewSalesHandler(service.NewSalesService(products, stock, sales, movements, db, clock, nil)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(products, stock, sales, purchases, movements, clock)),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator", "counter-1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

type created[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func createProduct(t *testing.T, app *fiber.App, name, unit, rate string) model.Product {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":          name,
		"category":      "Dairy",
		"unit":          unit,
		"purchase_rate": rate,
		"sale_rate":     rate,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var out created[model.Product]
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Data
}

func purchase(t *testing.T, app *fiber.App, productID fmt.Stringer, qty int) {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"supplier_name": "Shree Dairy",
		"product_id":    productID.String(),
		"quantity":      qty,
		"price":         50,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	status, body := do(t, app, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestProductEndpoints(t *testing.T) {
	app := newTestApp(t)
	paneer := createProduct(t, app, "Paneer", "kg", "100")
	assert.Equal(t, "counter-1", paneer.CreatedBy)

	status, body := do(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "paneer", "category": "Dairy", "unit": "kg", "purchase_rate": 1, "sale_rate": 1,
	})
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, body = do(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Ghee", "category": "Dairy", "unit": "gm", "purchase_rate": 1, "sale_rate": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status, string(body))
	assert.Contains(t, string(body), "Unit")

	status, _ = do(t, app, http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/products/"+paneer.ID.String()+"0", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPatch, "/api/v1/products/"+paneer.ID.String(), map[string]interface{}{"sale_rate": "120"})
	require.Equal(t, http.StatusOK, status, string(body))
	var updated created[model.Product]
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "120", updated.Data.SaleRate.String())
	assert.Equal(t, "Paneer", updated.Data.Name)

	status, body = do(t, app, http.MethodGet, "/api/v1/products/"+paneer.ID.String()+"/units", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"units":["kg","gm"]`)

	for i := 0; i < 11; i++ {
		createProduct(t, app, fmt.Sprintf("Milk Pouch %02d", i), "packet", "30")
	}

	status, body = do(t, app, http.MethodGet, "/api/v1/products?search=pouch&page=2", nil)
	require.Equal(t, http.StatusOK, status)
	var page pagination.Page[model.Product]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Milk Pouch 10", page.Items[0].Name)

	status, body = do(t, app, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, status)
	var all []model.Product
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 12)

	status, _ = do(t, app, http.MethodGet, "/api/v1/products?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestQuoteEndpoint(t *testing.T) {
	app := newTestApp(t)
	paneer := createProduct(t, app, "Paneer", "kg", "100")

	status, body := do(t, app, http.MethodPost, "/api/v1/pricing/quote", map[string]interface{}{
		"product_id": paneer.ID, "qty": 500, "unit": "gm",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var quote service.QuoteResult
	require.NoError(t, json.Unmarshal(body, &quote))
	assert.True(t, quote.Valid)
	assert.Equal(t, "50", quote.Total.String())

	status, body = do(t, app, http.MethodPost, "/api/v1/pricing/quote", map[string]interface{}{
		"product_id": paneer.ID, "qty": 500, "unit": "ml",
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &quote))
	assert.False(t, quote.Valid)
	assert.True(t, quote.Total.IsZero())
}

func TestSaleFlow(t *testing.T) {
	app := newTestApp(t)
	paneer := createProduct(t, app, "Paneer", "kg", "100")
	milk := createProduct(t, app, "Toned Milk", "ltr", "60")
	purchase(t, app, paneer.ID, 10)
	purchase(t, app, milk.ID, 25)

	status, body := do(t, app, http.MethodPost, "/api/v1/sales", map[string]interface{}{
		"customer_name": "Ravi",
		"items": []map[string]interface{}{
			{"product_id": paneer.ID, "qty": 500, "unit": "gm", "rate": 1},
			{"product_id": milk.ID, "qty": 2},
		},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var sale created[model.Sale]
	require.NoError(t, json.Unmarshal(body, &sale))
	assert.Equal(t, "170", sale.Data.Total.String())
	assert.Equal(t, "100", sale.Data.Items[0].Rate.String())

	status, body = do(t, app, http.MethodPost, "/api/v1/sales", map[string]interface{}{
		"customer_name": "Ravi",
		"items":         []map[string]interface{}{{"product_id": paneer.ID, "qty": 20}},
	})
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, body = do(t, app, http.MethodPost, "/api/v1/sales", map[string]interface{}{
		"customer_name": "Ravi",
		"items":         []map[string]interface{}{{"product_id": paneer.ID, "qty": 1, "unit": "ml"}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "line 1")

	status, body = do(t, app, http.MethodGet, "/api/v1/sales/"+sale.Data.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	var invoice service.SaleInvoice
	require.NoError(t, json.Unmarshal(body, &invoice))
	assert.Equal(t, 2, invoice.Lines)
	assert.Equal(t, "170", invoice.Subtotal.String())

	status, _ = do(t, app, http.MethodGet, "/api/v1/sales/"+paneer.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/sales/recent?page=1", nil)
	require.Equal(t, http.StatusOK, status)
	var recent pagination.Page[report.SaleLineRow]
	require.NoError(t, json.Unmarshal(body, &recent))
	assert.Len(t, recent.Items, 2)
	assert.Equal(t, 1, recent.TotalPages)

	status, body = do(t, app, http.MethodGet, "/api/v1/stock?sort=remaining&order=asc", nil)
	require.Equal(t, http.StatusOK, status)
	var rows []report.StockRow
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Paneer", rows[0].Name)
	assert.Equal(t, "9.5", rows[0].Remaining.String())
	assert.Equal(t, report.StatusLowStock, rows[0].Status)

	status, body = do(t, app, http.MethodGet, "/api/v1/stock/overview", nil)
	require.Equal(t, http.StatusOK, status)
	var overview report.Overview
	require.NoError(t, json.Unmarshal(body, &overview))
	assert.Equal(t, 2, overview.TotalProducts)
	assert.Equal(t, 1, overview.LowStockCount)

	status, body = do(t, app, http.MethodGet, "/api/v1/purchases", nil)
	require.Equal(t, http.StatusOK, status)
	var purchases []model.PurchaseRecord
	require.NoError(t, json.Unmarshal(body, &purchases))
	require.Len(t, purchases, 2)

	status, body = do(t, app, http.MethodGet, "/api/v1/purchases/"+purchases[0].ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"number":"PUR-`)
}

func TestDashboardEndpoints(t *testing.T) {
	app := newTestApp(t)
	paneer := createProduct(t, app, "Paneer", "kg", "100")
	purchase(t, app, paneer.ID, 30)

	status, body := do(t, app, http.MethodPost, "/api/v1/sales", map[string]interface{}{
		"customer_name": "Meena",
		"items":         []map[string]interface{}{{"product_id": paneer.ID, "qty": 3}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/top-selling", nil)
	require.Equal(t, http.StatusOK, status)
	var top []report.TopSellingEntry
	require.NoError(t, json.Unmarshal(body, &top))
	require.Len(t, top, 1)
	assert.Equal(t, "100.0", top[0].Percent)

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/sales-series?timeframe=yearly", nil)
	require.Equal(t, http.StatusOK, status)
	var series report.Series
	require.NoError(t, json.Unmarshal(body, &series))
	require.Len(t, series.Labels, 12)
	assert.Equal(t, "3", series.DataPoints[9].String())

	status, _ = do(t, app, http.MethodGet, "/api/v1/dashboard/sales-series?timeframe=daily", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/stock-movement?days=3", nil)
	require.Equal(t, http.StatusOK, status)
	var movement struct {
		Period int                    `json:"period"`
		Data   []report.MovementPoint `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &movement))
	assert.Equal(t, 3, movement.Period)
	require.Len(t, movement.Data, 3)
	assert.Equal(t, "30", movement.Data[2].Inbound.String())
	assert.Equal(t, "3", movement.Data[2].Outbound.String())

	status, body = do(t, app, http.MethodGet, "/api/v1/reports/summary?range=1m", nil)
	require.Equal(t, http.StatusOK, status)
	var summary report.FinancialSummary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, "300", summary.Revenue.String())
	assert.Equal(t, "1500", summary.Expenses.String())

	status, _ = do(t, app, http.MethodGet, "/api/v1/reports/summary?range=5y", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/overview", nil)
	require.Equal(t, http.StatusOK, status)
	var overview service.DashboardOverview
	require.NoError(t, json.Unmarshal(body, &overview))
	assert.Equal(t, 1, overview.Today.Orders)
	assert.Equal(t, 1, overview.Stock.TotalProducts)
}
