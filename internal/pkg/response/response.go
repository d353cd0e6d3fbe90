package response

import (
	"errors"

	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// DataBody wraps a successful payload.
type DataBody struct {
	Data interface{} `json:"data"`
}

// MessageBody is the shape of every error response.
type MessageBody struct {
	Message string `json:"message"`
}

// Data sends 200 with {data}.
func Data(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(DataBody{Data: data})
}

// Message sends {message} with the given status.
func Message(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(MessageBody{Message: message})
}

// Error maps a service error to its status and caller-visible message.
// Execution detail is logged and never returned.
func Error(c *fiber.Ctx, err error) error {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return Message(c, fiber.StatusBadRequest, fieldErr.Error())
	case errors.Is(err, domain.ErrDatabaseURLMissing):
		return Message(c, fiber.StatusInternalServerError, domain.ErrDatabaseURLMissing.Error())
	case errors.Is(err, domain.ErrListingNotFound):
		return Message(c, fiber.StatusNotFound, domain.ErrListingNotFound.Error())
	}
	log.Error().Err(err).
		Str("trace_id", traceID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
	c.Locals(FailureLocal, err)
	return Message(c, fiber.StatusInternalServerError, domain.GenericFailureMessage)
}

// FailureLocal holds the hidden cause of a generic 500 for the health error log.
const FailureLocal = "failure"

func traceID(c *fiber.Ctx) string {
	if id, ok := c.Locals("trace_id").(string); ok {
		return id
	}
	return ""
}
