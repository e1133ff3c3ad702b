package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	OperatorHeader  = "X-Operator"
	OperatorKey     = "operator"
	DefaultOperator = "system"
)

// Operator stores who is acting on the request for audit fields. There is no
// login; the client names the operator in the X-Operator header.
func Operator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		operator := strings.TrimSpace(c.Get(OperatorHeader))
		if operator == "" {
			operator = DefaultOperator
		}
		c.Locals(OperatorKey, operator)
		return c.Next()
	}
}
