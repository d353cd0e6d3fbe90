package listings

import (
	"math"
	"net/url"

	listsvc "listd-backend/internal/application/listings"
	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/response"
	"listd-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
}

// GET /api/v1/property-listings: { before, after, count, data }
func (h *Handlers) Search(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return response.Error(c, domain.ErrDatabaseURLMissing)
	}
	criteria, err := listsvc.ParseCriteria(validation.ParseQuery(string(c.Request().URI().QueryString())))
	if err != nil {
		return response.Error(c, err)
	}
	page, err := h.Service.Search(c.UserContext(), criteria)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(page)
}

// GET /api/v1/property-listings/:id: { data: listing & { property_images } }
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return response.Error(c, domain.ErrDatabaseURLMissing)
	}
	id, err := listingID(c.Params("id"))
	if err != nil {
		return response.Error(c, err)
	}
	listing, err := h.Service.GetListing(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Data(c, listing)
}

func listingID(raw string) (int64, error) {
	f, err := validation.NewValues(url.Values{"id": {raw}}).NonNegative("id")
	if err != nil {
		return 0, err
	}
	if f == nil || *f != math.Trunc(*f) {
		return 0, validation.Invalid("id", "expected integer, received float")
	}
	return int64(*f), nil
}
