// Package dbtest builds in-memory SQLite catalogs for tests.
package dbtest

import (
	"testing"
	"time"

	"listd-backend/internal/domain"
	"listd-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database. The pool is pinned to one
// connection because every SQLite :memory: connection is its own database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:", database.Pool{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Catalog holds the reference rows seeded by Seed, keyed by slug or name.
type Catalog struct {
	ListingTypes  map[string]int64
	Statuses      map[string]int64
	PropertyTypes map[string]int64
	Cities        map[string]int64
	db            *gorm.DB
	created       time.Time
}

// Seed inserts listing types, statuses, property types and a few cities.
func Seed(t testing.TB, db *gorm.DB) *Catalog {
	t.Helper()
	c := &Catalog{
		ListingTypes:  map[string]int64{},
		Statuses:      map[string]int64{},
		PropertyTypes: map[string]int64{},
		Cities:        map[string]int64{},
		db:            db,
		created:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, lt := range []domain.ListingType{
		{Name: "For Sale", Slug: domain.ListingTypeForSale},
		{Name: "For Rent", Slug: domain.ListingTypeForRent},
	} {
		require.NoError(t, db.Create(&lt).Error)
		c.ListingTypes[lt.Slug] = lt.ID
	}
	for _, st := range []domain.PropertyStatus{
		{Name: "Available", Slug: domain.StatusAvailable},
		{Name: "Sold", Slug: "sold"},
	} {
		require.NoError(t, db.Create(&st).Error)
		c.Statuses[st.Slug] = st.ID
	}
	for _, pt := range []domain.PropertyType{
		{Name: "Condominium", Slug: domain.PropertyTypeCondominium},
		{Name: "House", Slug: domain.PropertyTypeHouse},
		{Name: "Warehouse", Slug: domain.PropertyTypeWarehouse},
		{Name: "Land", Slug: domain.PropertyTypeLand},
	} {
		require.NoError(t, db.Create(&pt).Error)
		c.PropertyTypes[pt.Slug] = pt.ID
	}
	ncr := domain.Region{Name: "Metro Manila"}
	require.NoError(t, db.Create(&ncr).Error)
	cebu := domain.Region{Name: "Central Visayas"}
	require.NoError(t, db.Create(&cebu).Error)
	for _, city := range []domain.City{
		{Name: "Makati", RegionID: ncr.ID},
		{Name: "Taguig", RegionID: ncr.ID},
		{Name: "Cebu City", RegionID: cebu.ID},
	} {
		require.NoError(t, db.Create(&city).Error)
		c.Cities[city.Name] = city.ID
	}
	return c
}

// Spec describes one listing and its property. Zero values fall back to an
// available for-sale house in Makati priced at 5,000,000.
type Spec struct {
	Title        string
	Description  string
	Price        float64
	ListingType  string
	Status       string
	PropertyType string
	City         string
	FloorArea    *float64
	LotArea      *float64
	BuildingSize *float64
	Bedrooms     *int
	Bathrooms    *int
	Parking      *int
	Images       []string
}

// Add inserts a listing, its property and images, returning the listing id.
// Ids increase with every call, so later listings are "newer".
func (c *Catalog) Add(t testing.TB, s Spec) int64 {
	t.Helper()
	if s.Title == "" {
		s.Title = "listing"
	}
	if s.Price == 0 {
		s.Price = 5_000_000
	}
	if s.ListingType == "" {
		s.ListingType = domain.ListingTypeForSale
	}
	if s.Status == "" {
		s.Status = domain.StatusAvailable
	}
	if s.PropertyType == "" {
		s.PropertyType = domain.PropertyTypeHouse
	}
	if s.City == "" {
		s.City = "Makati"
	}
	c.created = c.created.Add(time.Hour)

	l := domain.Listing{
		ListingTitle:     s.Title,
		ListingURL:       "https://listings.example/" + s.Title,
		Price:            s.Price,
		PriceFormatted:   "₱" + s.Title,
		ListingTypeID:    c.ListingTypes[s.ListingType],
		PropertyStatusID: c.Statuses[s.Status],
		Description:      s.Description,
		CreatedAt:        c.created,
	}
	require.NoError(t, c.db.Create(&l).Error)
	p := domain.Property{
		ListingID:      l.ID,
		PropertyTypeID: c.PropertyTypes[s.PropertyType],
		CityID:         c.Cities[s.City],
		FloorArea:      s.FloorArea,
		LotArea:        s.LotArea,
		BuildingSize:   s.BuildingSize,
		Bedrooms:       s.Bedrooms,
		Bathrooms:      s.Bathrooms,
		ParkingSpace:   s.Parking,
	}
	require.NoError(t, c.db.Create(&p).Error)
	for _, url := range s.Images {
		require.NoError(t, c.db.Create(&domain.PropertyImage{PropertyID: p.ID, URL: url}).Error)
	}
	return l.ID
}

func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }
