package router

import (
	healthsvc "listd-backend/internal/application/health"
	listsvc "listd-backend/internal/application/listings"
	refsvc "listd-backend/internal/application/reference"
	valsvc "listd-backend/internal/application/valuation"
	"listd-backend/internal/config"
	"listd-backend/internal/infrastructure/cache"
	"listd-backend/internal/infrastructure/database"
	healthhandler "listd-backend/internal/interfaces/handlers/health"
	listhandler "listd-backend/internal/interfaces/handlers/listings"
	refhandler "listd-backend/internal/interfaces/handlers/reference"
	valhandler "listd-backend/internal/interfaces/handlers/valuation"
	"listd-backend/internal/metrics"
	"listd-backend/internal/middleware"
	"listd-backend/internal/pkg/currency"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp wires middleware, services and routes. A missing database URL is
// not fatal: the data routes answer with the configuration error instead.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	rdb, err := cache.Open(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL, database.Pool{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, nil, err
		}
	}

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.RouteLogger())
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	collector := &healthsvc.Collector{Rdb: rdb, PingTimeout: cfg.DBAcquireTimeout}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			collector.DB = sqlDB
		}
	}
	hh := &healthhandler.Handlers{Collector: collector, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	money := currency.New(cfg.CurrencyLocale, cfg.CurrencySymbol)
	lh := &listhandler.Handlers{Service: &listsvc.Service{DB: db, Timeout: cfg.DBAcquireTimeout}}
	vh := &valhandler.Handlers{Service: &valsvc.Service{DB: db, Currency: money, Timeout: cfg.DBAcquireTimeout}}
	refService := &refsvc.Service{DB: db, TTL: cfg.ReferenceCacheTTL, Timeout: cfg.DBAcquireTimeout}
	if rdb != nil {
		refService.Cache = &cache.Redis{Client: rdb}
	}
	rh := &refhandler.Handlers{Service: refService}

	v1 := app.Group("/api/v1")
	v1.Get("/property-listings", lh.Search)
	v1.Get("/property-listings/:id", lh.GetListing)
	v1.Get("/property-valuation", vh.Estimate)
	v1.Get("/listing-cities", rh.Cities)
	v1.Get("/listing-types", rh.ListingTypes)
	v1.Get("/property-types", rh.PropertyTypes)
	v1.Post("/property-types", rh.CreatePropertyType)
	v1.Get("/property-status", rh.PropertyStatuses)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app, db, rdb, nil
}
