package domain

// ListingType is a market segment (for sale, for rent).
type ListingType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Slug string `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
}

func (ListingType) TableName() string {
	return "listing_types"
}

type PropertyStatus struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Slug string `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
}

func (PropertyStatus) TableName() string {
	return "property_status"
}

type PropertyType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Slug string `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
}

func (PropertyType) TableName() string {
	return "property_types"
}

type Region struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (Region) TableName() string {
	return "regions"
}

// City is matched against free-text locations by similarity, never by equality.
type City struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;not null;index" json:"name"`
	RegionID int64  `gorm:"column:region_id;not null;index" json:"region_id"`
}

func (City) TableName() string {
	return "cities"
}

// CityWithRegion is the cached listing-cities entry.
type CityWithRegion struct {
	ID     int64  `gorm:"column:id" json:"id"`
	Name   string `gorm:"column:name" json:"name"`
	Region string `gorm:"column:region" json:"region"`
}
