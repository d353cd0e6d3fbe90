package reference

import (
	"context"
	"errors"

	refsvc "listd-backend/internal/application/reference"
	"listd-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *refsvc.Service
}

// CreatePropertyTypeRequest is the body of POST /api/v1/property-types.
type CreatePropertyTypeRequest struct {
	PropertyTypeName string `json:"propertyTypeName"`
}

// GET /api/v1/listing-cities
func (h *Handlers) Cities(c *fiber.Ctx) error {
	return list(c, h.Service.Cities)
}

// GET /api/v1/listing-types
func (h *Handlers) ListingTypes(c *fiber.Ctx) error {
	return list(c, h.Service.ListingTypes)
}

// GET /api/v1/property-types
func (h *Handlers) PropertyTypes(c *fiber.Ctx) error {
	return list(c, h.Service.PropertyTypes)
}

// GET /api/v1/property-status
func (h *Handlers) PropertyStatuses(c *fiber.Ctx) error {
	return list(c, h.Service.PropertyStatuses)
}

// POST /api/v1/property-types: returns the existing type when the name is taken.
func (h *Handlers) CreatePropertyType(c *fiber.Ctx) error {
	var req CreatePropertyTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, refsvc.ErrInvalidPropertyTypeName.Error())
	}
	pt, err := h.Service.CreatePropertyType(c.UserContext(), req.PropertyTypeName)
	if errors.Is(err, refsvc.ErrInvalidPropertyTypeName) {
		return response.Message(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, pt)
}

func list[T any](c *fiber.Ctx, load func(context.Context) ([]T, error)) error {
	out, err := load(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	if out == nil {
		out = []T{}
	}
	return response.Data(c, out)
}

