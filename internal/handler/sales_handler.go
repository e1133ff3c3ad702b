package handler

import (
	"go-dairy-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.RecordSale(&req, getOperator(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, sales)
}

// GetRecentSales returns the lines of the newest orders.
func (h *SalesHandler) GetRecentSales(c *fiber.Ctx) error {
	rows, err := h.service.GetRecentLines()
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, rows)
}

func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	invoice, err := h.service.GetSaleInvoice(saleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}
