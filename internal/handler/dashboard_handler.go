package handler

import (
	"strconv"

	"go-dairy-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.service.GetOverview()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(overview)
}

func (h *DashboardHandler) GetTopSelling(c *fiber.Ctx) error {
	entries, err := h.service.GetTopSelling()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

// GetSalesSeries returns chart data.
// Query params: timeframe (weekly|monthly|yearly, default weekly)
func (h *DashboardHandler) GetSalesSeries(c *fiber.Ctx) error {
	series, err := h.service.GetSalesSeries(c.Query("timeframe"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(series)
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(service.DefaultMovementDays)))
	if err != nil || days <= 0 {
		days = service.DefaultMovementDays
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetFinancialSummary rolls up revenue and spending.
// Query params: range (7d|1m|3m|6m|12m, default 7d)
func (h *DashboardHandler) GetFinancialSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetFinancialSummary(c.Query("range", "7d"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
