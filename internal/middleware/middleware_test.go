package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

func TestTracing_ReusesValidIncomingID(t *testing.T) {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetTraceID(c)) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "0b9c5c1e-7a55-4e7f-9b7a-2f0c1b1e9d11")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "0b9c5c1e-7a55-4e7f-9b7a-2f0c1b1e9d11", resp.Header.Get("X-Trace-Id"))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "<script>")
	resp, err = app.Test(req)
	require.NoError(t, err)
	id := resp.Header.Get("X-Trace-Id")
	assert.NotEqual(t, "<script>", id)
	assert.Len(t, id, 36)
}

func TestHealthMarker_CountsAndLogsFailures(t *testing.T) {
	rdb, mr := setupRedis(t)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Tracing())
	app.Use(HealthMarker(rdb))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error {
		return response.Error(c, domain.Execution("count listings", errors.New("connection refused")))
	})
	app.Get("/health/json", func(c *fiber.Ctx) error { return c.SendString("{}") })

	for _, path := range []string{"/ok", "/boom", "/health/json"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	total, _ := mr.Get(KeyReqTotal)
	assert.Equal(t, "2", total)
	errs, _ := mr.Get(KeyReqErrors)
	assert.Equal(t, "1", errs)

	entries, err := rdb.LRange(context.Background(), KeyErrorLog, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &entry))
	assert.Equal(t, "/boom", entry["path"])
	assert.Equal(t, float64(500), entry["status"])
	assert.Equal(t, "count listings: connection refused", entry["message"])
}

func TestHealthMarker_TrimsErrorLog(t *testing.T) {
	rdb, _ := setupRedis(t)
	app := fiber.New()
	app.Use(HealthMarker(rdb))
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadGateway) })

	for i := 0; i < ErrorLogSize+5; i++ {
		_, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
	}
	n, err := rdb.LLen(context.Background(), KeyErrorLog).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(ErrorLogSize), n)
}

func TestHealthMarker_NilClient(t *testing.T) {
	app := fiber.New()
	app.Use(HealthMarker(nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(CORSConfig{AllowedSuffix: ".listd.ph", DevPassword: "letmein"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://app.listd.ph")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "https://app.listd.ph", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Not allowed by CORS"}`, string(body))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("dev-password", "letmein")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/panic-ish", func(c *fiber.Ctx) error { return errors.New("db exploded") })

	resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Cannot GET /nope"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/panic-ish", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Something went wrong."}`, string(body))
}
