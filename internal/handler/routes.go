package handler

import (
	"go-dairy-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Products  *ProductHandler
	Inventory *InventoryHandler
	Sales     *SalesHandler
	Dashboard *DashboardHandler
}

// SetupRoutes mounts the REST API under /api/v1 and the health probe.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", middleware.Operator())

	// Catalog
	api.Get("/products", h.Products.GetProducts)
	api.Post("/products", h.Products.CreateProduct)
	api.Get("/products/:id", h.Products.GetProduct)
	api.Put("/products/:id", h.Products.UpdateProduct)
	api.Patch("/products/:id", h.Products.UpdateProduct)
	api.Get("/products/:id/units", h.Products.GetUnits)
	api.Post("/pricing/quote", h.Products.Quote)

	// Stock and purchases
	api.Get("/stock", h.Inventory.GetStock)
	api.Get("/stock/overview", h.Inventory.GetStockOverview)
	api.Get("/purchases", h.Inventory.GetPurchases)
	api.Post("/purchases", h.Inventory.CreatePurchase)
	api.Get("/purchases/:id", h.Inventory.GetPurchase)

	// Sales
	api.Get("/sales", h.Sales.GetSales)
	api.Post("/sales", h.Sales.CreateSale)
	api.Get("/sales/recent", h.Sales.GetRecentSales)
	api.Get("/sales/:id", h.Sales.GetSale)

	// Dashboard and reports
	api.Get("/dashboard/overview", h.Dashboard.GetOverview)
	api.Get("/dashboard/top-selling", h.Dashboard.GetTopSelling)
	api.Get("/dashboard/sales-series", h.Dashboard.GetSalesSeries)
	api.Get("/dashboard/stock-movement", h.Dashboard.GetStockMovement)
	api.Get("/reports/summary", h.Dashboard.GetFinancialSummary)
}
