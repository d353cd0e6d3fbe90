package middleware

import (
	"errors"

	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Fiber errors keep their status
// and message; anything else is a generic 500 whose cause is logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			return response.Message(c, fe.Code, domain.GenericFailureMessage)
		}
		return response.Message(c, fe.Code, fe.Message)
	}
	return response.Error(c, err)
}
