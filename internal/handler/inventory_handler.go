package handler

import (
	"go-dairy-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetStock lists stock rows.
// Query params: search, sort (name|category|remaining), order (asc|desc|default), page, limit
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	rows, err := h.service.GetStockRows(service.StockQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, rows)
}

func (h *InventoryHandler) GetStockOverview(c *fiber.Ctx) error {
	overview, err := h.service.GetOverview()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(overview)
}

func (h *InventoryHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.service.RecordPurchase(&req, getOperator(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Purchase recorded", "data": purchase})
}

func (h *InventoryHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.GetAllPurchases()
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, purchases)
}

func (h *InventoryHandler) GetPurchase(c *fiber.Ctx) error {
	purchaseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	invoice, err := h.service.GetPurchaseInvoice(purchaseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}
