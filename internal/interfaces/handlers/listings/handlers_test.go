package listings

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	listsvc "listd-backend/internal/application/listings"
	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/dbtest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupListingsHandlers(t *testing.T) (*fiber.App, *dbtest.Catalog) {
	db := dbtest.Open(t)
	cat := dbtest.Seed(t, db)
	h := &Handlers{Service: &listsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/api/v1/property-listings", h.Search)
	app.Get("/api/v1/property-listings/:id", h.GetListing)
	return app, cat
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestSearch_Scenario(t *testing.T) {
	app, cat := setupListingsHandlers(t)
	a := cat.Add(t, dbtest.Spec{Bedrooms: dbtest.Int(2)})
	cat.Add(t, dbtest.Spec{Bedrooms: dbtest.Int(2), PropertyType: domain.PropertyTypeLand})
	cat.Add(t, dbtest.Spec{Bedrooms: dbtest.Int(4)})
	b := cat.Add(t, dbtest.Spec{Bedrooms: dbtest.Int(3)})
	cat.Add(t, dbtest.Spec{Bedrooms: dbtest.Int(3), Status: "sold"})

	status, out := get(t, app, "/api/v1/property-listings?property_type=house&min_bedrooms=2&max_bedrooms=3")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), out["count"])
	data := out["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, float64(b), data[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(a), data[1].(map[string]interface{})["id"])
	assert.Equal(t, float64(b), out["before"])
	assert.Equal(t, float64(a), out["after"])
}

func TestSearch_ValidationError(t *testing.T) {
	app, _ := setupListingsHandlers(t)
	status, out := get(t, app, "/api/v1/property-listings?listing_type=FOR-SALE")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "[listing_type]: invalid enum value. expected 'for-sale' | 'for-rent', received 'for-sale'", out["message"])

	status, out = get(t, app, "/api/v1/property-listings?min_price=abc")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "[min_price]: expected number, received nan", out["message"])
}

func TestSearch_EmptyResult(t *testing.T) {
	app, _ := setupListingsHandlers(t)
	status, out := get(t, app, "/api/v1/property-listings")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, out["before"])
	assert.Nil(t, out["after"])
	assert.Equal(t, float64(0), out["count"])
	assert.Equal(t, []interface{}{}, out["data"])
}

func TestSearch_NoDatabase(t *testing.T) {
	h := &Handlers{Service: &listsvc.Service{}}
	app := fiber.New()
	app.Get("/api/v1/property-listings", h.Search)
	status, out := get(t, app, "/api/v1/property-listings?min_price=abc")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Database URL not defined.", out["message"])
}

func TestGetListing(t *testing.T) {
	app, cat := setupListingsHandlers(t)
	id := cat.Add(t, dbtest.Spec{Title: "corner lot", Images: []string{"https://img/a.jpg"}})

	status, out := get(t, app, "/api/v1/property-listings/"+jsonNumber(id))
	assert.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Corner Lot", data["listing_title"])
	images := data["property_images"].([]interface{})
	require.Len(t, images, 1)
	assert.Equal(t, "https://img/a.jpg", images[0].(map[string]interface{})["url"])

	status, out = get(t, app, "/api/v1/property-listings/abc")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "[id]: expected number, received nan", out["message"])

	status, out = get(t, app, "/api/v1/property-listings/1.5")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "[id]: expected integer, received float", out["message"])

	status, out = get(t, app, "/api/v1/property-listings/9999")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Listing not found.", out["message"])
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
