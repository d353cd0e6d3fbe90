package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"listd-backend/internal/config"
	"listd-backend/internal/infrastructure/database"
	"listd-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var fiberApp *fiber.App
var appCfg *config.Config
var startupDB *gorm.DB
var startupRdb *redis.Client

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	appCfg = cfg
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("listing and valuation routes will answer with a configuration error")
	}
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}
	fiberApp = app
	startupDB = db
	startupRdb = rdb
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func Handler(w http.ResponseWriter, r *http.Request) {
	adaptor.FiberApp(fiberApp)(w, r)
}

func main() {
	if startupDB != nil {
		sqlDB, err := startupDB.DB()
		if err != nil {
			log.Fatal().Err(err).Msg("database: get handle")
		}
		if err := sqlDB.Ping(); err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		log.Info().Bool("postgres", database.IsPostgres(appCfg.DatabaseURL)).Msg("database connected")
		if appCfg.DBAutoMigrate {
			if err := database.AutoMigrate(startupDB); err != nil {
				log.Fatal().Err(err).Msg("database migration failed")
			}
			log.Info().Msg("database migrated")
		}
	}
	if startupRdb != nil {
		if err := startupRdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Msg("redis connected")
	}
	log.Info().
		Str("port", appCfg.Port).
		Str("health", "http://localhost:"+appCfg.Port+"/health/json").
		Msg("server running")

	if err := fiberApp.Listen(":" + appCfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
