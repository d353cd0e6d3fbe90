package config

import (
	"strings"
	"time"

	"listd-backend/internal/domain"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	DatabaseURL         string
	DBMaxOpenConns      int
	DBMaxIdleConns      int
	DBConnMaxLifetime   time.Duration
	DBAcquireTimeout    time.Duration // bounds every service call, pool wait included
	DBAutoMigrate       bool
	RedisURL            string
	ReferenceCacheTTL   time.Duration
	CurrencyLocale      string
	CurrencySymbol      string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "5s")
	v.SetDefault("REFERENCE_CACHE_TTL", "4h")
	v.SetDefault("CURRENCY_LOCALE", "en-US")
	v.SetDefault("CURRENCY_SYMBOL", "₱")

	env := v.GetString("NODE_ENV")
	if env == "" {
		env = v.GetString("APP_ENV")
	}
	if env == "" {
		env = "development"
	}

	dbURL := v.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = v.GetString("NEON_LISTD_DATABASE_URL")
	}

	return &Config{
		Env:                 env,
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DatabaseURL:         strings.TrimSpace(dbURL),
		DBMaxOpenConns:      v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:      v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:   v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBAcquireTimeout:    v.GetDuration("DB_ACQUIRE_TIMEOUT"),
		DBAutoMigrate:       v.GetBool("DB_AUTO_MIGRATE"),
		RedisURL:            v.GetString("REDIS_URL"),
		ReferenceCacheTTL:   v.GetDuration("REFERENCE_CACHE_TTL"),
		CurrencyLocale:      v.GetString("CURRENCY_LOCALE"),
		CurrencySymbol:      v.GetString("CURRENCY_SYMBOL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}

// Validate is the single startup check. A missing database URL is a
// configuration error; the server still starts so it can answer with it.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return domain.ErrDatabaseURLMissing
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
