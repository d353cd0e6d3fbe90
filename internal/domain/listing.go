package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Property type slugs. Each one has exactly one authoritative size column.
const (
	PropertyTypeCondominium = "condominium"
	PropertyTypeHouse       = "house"
	PropertyTypeWarehouse   = "warehouse"
	PropertyTypeLand        = "land"
)

// Listing type slugs, also used as the valuation market segments.
const (
	ListingTypeForSale = "for-sale"
	ListingTypeForRent = "for-rent"
)

// StatusAvailable is the only property status served by search and valuation.
const StatusAvailable = "available"

// MinimumListingPrice filters out placeholder listings (price 0, 1, 999 ...).
const MinimumListingPrice = 5000

// PropertyTypes lists the accepted property type slugs in declaration order.
var PropertyTypes = []string{PropertyTypeCondominium, PropertyTypeHouse, PropertyTypeWarehouse, PropertyTypeLand}

// ListingTypes lists the accepted listing type slugs in declaration order.
var ListingTypes = []string{ListingTypeForSale, ListingTypeForRent}

// Listing is one advertised offer. Rows are written by the ingestion side only.
type Listing struct {
	ID                           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListingTitle                 string    `gorm:"column:listing_title;not null" json:"listing_title"`
	ListingURL                   string    `gorm:"column:listing_url" json:"listing_url"`
	Price                        float64   `gorm:"column:price;type:decimal(18,2);not null;index" json:"price"`
	PriceFormatted               string    `gorm:"column:price_formatted" json:"price_formatted"`
	PriceForRentPerSqm           *float64  `gorm:"column:price_for_rent_per_sqm;type:decimal(18,2)" json:"price_for_rent_per_sqm"`
	PriceForSalePerSqm           *float64  `gorm:"column:price_for_sale_per_sqm;type:decimal(18,2)" json:"price_for_sale_per_sqm"`
	PriceForRentPerSqmFormatted  *string   `gorm:"column:price_for_rent_per_sqm_formatted" json:"price_for_rent_per_sqm_formatted"`
	PriceForSalePerSqmFormatted  *string   `gorm:"column:price_for_sale_per_sqm_formatted" json:"price_for_sale_per_sqm_formatted"`
	ListingTypeID                int64     `gorm:"column:listing_type_id;not null;index" json:"listing_type_id"`
	PropertyStatusID             int64     `gorm:"column:property_status_id;not null;index" json:"property_status_id"`
	SubCategory                  *string   `gorm:"column:sub_category" json:"sub_category"`
	Latitude                     *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude                    *float64  `gorm:"column:longitude" json:"longitude"`
	Description                  string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt                    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// Property holds the physical attributes of a listing.
type Property struct {
	ID              int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListingID       int64          `gorm:"column:listing_id;not null;uniqueIndex" json:"listing_id"`
	PropertyTypeID  int64          `gorm:"column:property_type_id;not null;index" json:"property_type_id"`
	CityID          int64          `gorm:"column:city_id;not null;index" json:"city_id"`
	BuildingName    *string        `gorm:"column:building_name" json:"building_name"`
	SubdivisionName *string        `gorm:"column:subdivision_name" json:"subdivision_name"`
	ProjectName     *string        `gorm:"column:project_name" json:"project_name"`
	FloorArea       *float64       `gorm:"column:floor_area" json:"floor_area"`
	LotArea         *float64       `gorm:"column:lot_area" json:"lot_area"`
	BuildingSize    *float64       `gorm:"column:building_size" json:"building_size"`
	Bedrooms        *int           `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms       *int           `gorm:"column:bathrooms" json:"bathrooms"`
	ParkingSpace    *int           `gorm:"column:parking_space" json:"parking_space"`
	Area            *string        `gorm:"column:area" json:"area"`
	Address         *string        `gorm:"column:address" json:"address"`
	Features        datatypes.JSON `gorm:"column:features" json:"features"`
	MainImageURL    *string        `gorm:"column:main_image_url" json:"main_image_url"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyImage is a media reference attached to a listing.
type PropertyImage struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PropertyID int64  `gorm:"column:property_id;not null;index" json:"-"`
	URL        string `gorm:"column:url;not null" json:"url"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// ListingRow is the flat read model returned by search and lookup.
type ListingRow struct {
	ID                          int64          `gorm:"column:id" json:"id"`
	ListingTitle                string         `gorm:"column:listing_title" json:"listing_title"`
	ListingURL                  string         `gorm:"column:listing_url" json:"listing_url"`
	Price                       float64        `gorm:"column:price" json:"price"`
	PriceFormatted              string         `gorm:"column:price_formatted" json:"price_formatted"`
	PriceForRentPerSqm          *float64       `gorm:"column:price_for_rent_per_sqm" json:"price_for_rent_per_sqm"`
	PriceForSalePerSqm          *float64       `gorm:"column:price_for_sale_per_sqm" json:"price_for_sale_per_sqm"`
	PriceForRentPerSqmFormatted *string        `gorm:"column:price_for_rent_per_sqm_formatted" json:"price_for_rent_per_sqm_formatted"`
	PriceForSalePerSqmFormatted *string        `gorm:"column:price_for_sale_per_sqm_formatted" json:"price_for_sale_per_sqm_formatted"`
	ListingType                 string         `gorm:"column:listing_type" json:"listing_type"`
	PropertyStatus              string         `gorm:"column:property_status" json:"property_status"`
	PropertyType                string         `gorm:"column:property_type" json:"property_type"`
	SubCategory                 *string        `gorm:"column:sub_category" json:"sub_category"`
	BuildingName                *string        `gorm:"column:building_name" json:"building_name"`
	SubdivisionName             *string        `gorm:"column:subdivision_name" json:"subdivision_name"`
	ProjectName                 *string        `gorm:"column:project_name" json:"project_name"`
	FloorArea                   *float64       `gorm:"column:floor_area" json:"floor_area"`
	LotArea                     *float64       `gorm:"column:lot_area" json:"lot_area"`
	BuildingSize                *float64       `gorm:"column:building_size" json:"building_size"`
	Bedrooms                    *int           `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms                   *int           `gorm:"column:bathrooms" json:"bathrooms"`
	ParkingSpace                *int           `gorm:"column:parking_space" json:"parking_space"`
	City                        string         `gorm:"column:city" json:"city"`
	Area                        *string        `gorm:"column:area" json:"area"`
	Address                     *string        `gorm:"column:address" json:"address"`
	Features                    datatypes.JSON `gorm:"column:features" json:"features"`
	MainImageURL                *string        `gorm:"column:main_image_url" json:"main_image_url"`
	Latitude                    *float64       `gorm:"column:latitude" json:"latitude"`
	Longitude                   *float64       `gorm:"column:longitude" json:"longitude"`
	Description                 string         `gorm:"column:description" json:"description"`
	DescriptionSimilarity       *float64       `gorm:"column:description_similarity" json:"description_similarity,omitempty"`
	CreatedAt                   time.Time      `gorm:"column:created_at" json:"created_at"`
}

// ListingDetail is a ListingRow with its images, served by the lookup endpoint.
type ListingDetail struct {
	ListingRow
	PropertyImages []PropertyImage `json:"property_images"`
}
