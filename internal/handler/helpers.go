package handler

import (
	"errors"
	"strconv"

	"go-dairy-admin/internal/middleware"
	"go-dairy-admin/internal/service"
	"go-dairy-admin/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPageSize matches the 10-row tables of the admin screens.
const DefaultPageSize = 10

func getOperator(c *fiber.Ctx) string {
	operator, ok := c.Locals(middleware.OperatorKey).(string)
	if !ok || operator == "" {
		return middleware.DefaultOperator
	}
	return operator
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// writeError maps service errors onto status codes.
func writeError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrStockNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrPurchaseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateProduct),
		errors.Is(err, service.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
	}

	zap.L().Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

// respondList sends the whole list, or one page of it when ?page is given.
func respondList[T any](c *fiber.Ctx, items []T) error {
	if c.Query("page") == "" {
		if items == nil {
			items = []T{}
		}
		return c.JSON(items)
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "page must be a positive integer"})
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
	}

	return c.JSON(pagination.Paginate(items, page, limit))
}
