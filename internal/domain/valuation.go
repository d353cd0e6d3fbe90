package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User is a requester known by its external (Clerk) identity.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClerkID   string    `gorm:"column:clerk_id;not null;uniqueIndex" json:"clerk_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Valuation is the persisted snapshot of one valuation result.
type Valuation struct {
	ID                              int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID                          int64          `gorm:"column:user_id;not null;index" json:"user_id"`
	CityID                          *int64         `gorm:"column:city_id" json:"city_id"`
	Address                         string         `gorm:"column:address" json:"address"`
	PropertySize                    float64        `gorm:"column:property_size" json:"property_size"`
	PropertyTypeID                  *int64         `gorm:"column:property_type_id" json:"property_type_id"`
	EstimatedAveragePriceSale       string         `gorm:"column:estimated_formatted_average_price_sale" json:"estimated_formatted_average_price_sale"`
	EstimatedAveragePricePerSqmSale string         `gorm:"column:estimated_formatted_average_price_per_sqm_sale" json:"estimated_formatted_average_price_per_sqm_sale"`
	TopTenSimilarPropertiesSale     datatypes.JSON `gorm:"column:top_ten_similar_properties_sale" json:"top_ten_similar_properties_sale"`
	EstimatedAveragePriceRent       string         `gorm:"column:estimated_formatted_average_price_rent" json:"estimated_formatted_average_price_rent"`
	EstimatedAveragePricePerSqmRent string         `gorm:"column:estimated_formatted_average_price_per_sqm_rent" json:"estimated_formatted_average_price_per_sqm_rent"`
	TopTenSimilarPropertiesRent     datatypes.JSON `gorm:"column:top_ten_similar_properties_rent" json:"top_ten_similar_properties_rent"`
	GooglePlacesDataID              *string        `gorm:"column:google_places_data_id" json:"google_places_data_id"`
	GooglePlacesDetailsID           *string        `gorm:"column:google_places_details_id" json:"google_places_details_id"`
	CreatedAt                       time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Valuation) TableName() string {
	return "valuations"
}
