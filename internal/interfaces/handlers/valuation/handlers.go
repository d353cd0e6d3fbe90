package valuation

import (
	valsvc "listd-backend/internal/application/valuation"
	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/response"
	"listd-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *valsvc.Service
}

type envelope struct {
	Valuation valsvc.Result `json:"valuation"`
}

// GET /api/v1/property-valuation: { data: { valuation } }
// A failed recording is logged by the service and does not fail the request.
func (h *Handlers) Estimate(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return response.Error(c, domain.ErrDatabaseURLMissing)
	}
	req, err := valsvc.ParseRequest(validation.ParseQuery(string(c.Request().URI().QueryString())))
	if err != nil {
		return response.Error(c, err)
	}
	res, err := h.Service.Estimate(c.UserContext(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, envelope{Valuation: res})
}
