// Package reference serves the small, slow-changing lookup lists (cities,
// listing types, property types and statuses) behind a whole-response cache.
package reference

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"listd-backend/internal/domain"
	"listd-backend/internal/metrics"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Cache keys, one per list.
const (
	KeyCities         = "cities"
	KeyListingTypes   = "listing-types"
	KeyPropertyTypes  = "property-types"
	KeyPropertyStatus = "property-status"
)

// DefaultTTL is how long a cached list is served.
const DefaultTTL = 4 * time.Hour

// ErrInvalidPropertyTypeName rejects a blank or slug-less property type name.
var ErrInvalidPropertyTypeName = errors.New("Invalid property type name.")

// Cache stores whole encoded lists. A missing key is ok=false, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	DB *gorm.DB
	// Cache is optional. Cache failures are logged and fall through to DB.
	Cache   Cache
	TTL     time.Duration
	Timeout time.Duration
}

func (s *Service) Cities(ctx context.Context) ([]domain.CityWithRegion, error) {
	out := []domain.CityWithRegion{}
	err := s.cached(ctx, KeyCities, &out, func(db *gorm.DB) error {
		return db.Table("cities AS c").
			Select("c.id, c.name, r.name AS region").
			Joins("INNER JOIN regions AS r ON r.id = c.region_id").
			Order("c.name ASC").
			Scan(&out).Error
	})
	return out, err
}

func (s *Service) ListingTypes(ctx context.Context) ([]domain.ListingType, error) {
	var out []domain.ListingType
	err := s.cached(ctx, KeyListingTypes, &out, func(db *gorm.DB) error {
		return db.Order("id").Find(&out).Error
	})
	return out, err
}

func (s *Service) PropertyTypes(ctx context.Context) ([]domain.PropertyType, error) {
	var out []domain.PropertyType
	err := s.cached(ctx, KeyPropertyTypes, &out, func(db *gorm.DB) error {
		return db.Order("id").Find(&out).Error
	})
	return out, err
}

func (s *Service) PropertyStatuses(ctx context.Context) ([]domain.PropertyStatus, error) {
	var out []domain.PropertyStatus
	err := s.cached(ctx, KeyPropertyStatus, &out, func(db *gorm.DB) error {
		return db.Order("id").Find(&out).Error
	})
	return out, err
}

// CreatePropertyType returns the type with this exact name, creating it
// (with a derived slug) when absent. A creation drops the cached list.
func (s *Service) CreatePropertyType(ctx context.Context, name string) (*domain.PropertyType, error) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if name == "" || slug == "" {
		return nil, ErrInvalidPropertyTypeName
	}
	if s.DB == nil {
		return nil, domain.ErrDatabaseURLMissing
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, domain.Execution("begin property type", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var existing []domain.PropertyType
	if err := tx.Where("name = ?", name).Limit(1).Find(&existing).Error; err != nil {
		tx.Rollback()
		return nil, domain.Execution("find property type", err)
	}
	if len(existing) > 0 {
		tx.Rollback()
		return &existing[0], nil
	}
	pt := &domain.PropertyType{Name: name, Slug: slug}
	if err := tx.Create(pt).Error; err != nil {
		tx.Rollback()
		return nil, domain.Execution("create property type", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, domain.Execution("commit property type", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, KeyPropertyTypes); err != nil {
			log.Warn().Err(err).Str("key", KeyPropertyTypes).Msg("reference: cache invalidation failed")
		}
	}
	return pt, nil
}

// Slugify derives the URL slug of a display name ("House & Lot" becomes
// "house-and-lot").
func Slugify(name string) string {
	return slug.Make(name)
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// cached decodes key into dst, or runs load and stores its result.
func (s *Service) cached(ctx context.Context, key string, dst interface{}, load func(*gorm.DB) error) error {
	if s.Cache != nil {
		b, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("key", key).Msg("reference: cache read failed")
		case ok && json.Unmarshal(b, dst) == nil:
			metrics.ObserveCache(key, true)
			return nil
		}
		metrics.ObserveCache(key, false)
	}

	if s.DB == nil {
		return domain.ErrDatabaseURLMissing
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := load(s.DB.WithContext(ctx)); err != nil {
		return domain.Execution("load "+key, err)
	}

	if s.Cache != nil {
		ttl := s.TTL
		if ttl <= 0 {
			ttl = DefaultTTL
		}
		b, err := json.Marshal(dst)
		if err == nil {
			err = s.Cache.Set(ctx, key, b, ttl)
		}
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("reference: cache write failed")
		}
	}
	return nil
}
