package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/v1/property-listings/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/property-listings/:id", "404"))
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/property-listings/7", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/property-listings/:id", "404"))
	assert.Equal(t, before+1, after)
}

func TestObserveSearch_Modes(t *testing.T) {
	recent := testutil.ToFloat64(ListingSearches.WithLabelValues("recent"))
	relevance := testutil.ToFloat64(ListingSearches.WithLabelValues("relevance"))

	ObserveSearch(false)
	ObserveSearch(true)
	ObserveSearch(true)

	assert.Equal(t, recent+1, testutil.ToFloat64(ListingSearches.WithLabelValues("recent")))
	assert.Equal(t, relevance+2, testutil.ToFloat64(ListingSearches.WithLabelValues("relevance")))
}
