package database

import (
	"strings"
	"time"

	"listd-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Pool bounds the shared connection pool.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open opens a GORM DB from DSN. postgres:// and postgresql:// URLs use the
// Postgres driver; anything else is treated as a SQLite path (local/dev).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind poolers such as Neon's or PgBouncer.
func Open(dsn string, pool Pool) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, domain.ErrDatabaseURLMissing
	}
	var dialector gorm.Dialector
	if IsPostgres(dsn) {
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return db, nil
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Models lists every table the service reads or writes, parents first.
var Models = []interface{}{
	&domain.Region{},
	&domain.City{},
	&domain.ListingType{},
	&domain.PropertyStatus{},
	&domain.PropertyType{},
	&domain.Listing{},
	&domain.Property{},
	&domain.PropertyImage{},
	&domain.User{},
	&domain.Valuation{},
}

// AutoMigrate creates or updates the schema. On Postgres it first enables
// pg_trgm, which the similarity scorer depends on.
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
			return err
		}
	}
	return db.AutoMigrate(Models...)
}
