package reference

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	refsvc "listd-backend/internal/application/reference"
	"listd-backend/internal/infrastructure/cache"
	"listd-backend/internal/pkg/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReferenceHandlers(t *testing.T) (*fiber.App, *miniredis.Miniredis) {
	db := dbtest.Open(t)
	dbtest.Seed(t, db)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{Service: &refsvc.Service{DB: db, Cache: &cache.Redis{Client: rdb}}}
	app := fiber.New()
	app.Get("/api/v1/listing-cities", h.Cities)
	app.Get("/api/v1/listing-types", h.ListingTypes)
	app.Get("/api/v1/property-types", h.PropertyTypes)
	app.Get("/api/v1/property-status", h.PropertyStatuses)
	app.Post("/api/v1/property-types", h.CreatePropertyType)
	return app, mr
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestLists(t *testing.T) {
	app, mr := setupReferenceHandlers(t)
	tests := []struct {
		path string
		key  string
		n    int
	}{
		{"/api/v1/listing-cities", refsvc.KeyCities, 3},
		{"/api/v1/listing-types", refsvc.KeyListingTypes, 2},
		{"/api/v1/property-types", refsvc.KeyPropertyTypes, 4},
		{"/api/v1/property-status", refsvc.KeyPropertyStatus, 2},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, out := do(t, app, "GET", tt.path, "")
			assert.Equal(t, fiber.StatusOK, status)
			assert.Len(t, out["data"], tt.n)
			assert.True(t, mr.Exists(tt.key))
		})
	}
}

func TestCreatePropertyType(t *testing.T) {
	app, mr := setupReferenceHandlers(t)
	_, _ = do(t, app, "GET", "/api/v1/property-types", "")
	require.True(t, mr.Exists(refsvc.KeyPropertyTypes))

	status, out := do(t, app, "POST", "/api/v1/property-types", `{"propertyTypeName":"Town House"}`)
	assert.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Town House", data["name"])
	assert.Equal(t, "town-house", data["slug"])
	assert.False(t, mr.Exists(refsvc.KeyPropertyTypes))

	status, out = do(t, app, "GET", "/api/v1/property-types", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["data"], 5)
}

func TestCreatePropertyType_Invalid(t *testing.T) {
	app, _ := setupReferenceHandlers(t)
	for _, body := range []string{`{"propertyTypeName":"  "}`, `{"propertyTypeName":"!!"}`, `not json`} {
		status, out := do(t, app, "POST", "/api/v1/property-types", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.Equal(t, "Invalid property type name.", out["message"])
	}
}
