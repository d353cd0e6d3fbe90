// Package query holds the storage-neutral predicate model shared by listing
// search and valuation, and its rendering onto GORM statements.
package query

import "listd-backend/internal/domain"

// Kind tags how a predicate is rendered.
type Kind int

const (
	KindEquality Kind = iota + 1
	KindRange
	KindFloor
	KindFuzzyThreshold
	KindCursorBound
)

func (k Kind) String() string {
	switch k {
	case KindEquality:
		return "equality"
	case KindRange:
		return "range"
	case KindFloor:
		return "floor"
	case KindFuzzyThreshold:
		return "fuzzy-threshold"
	case KindCursorBound:
		return "cursor-bound"
	}
	return "unknown"
}

// Field is a qualified column of the listing base relation. Fields are
// constants; caller input only ever reaches Predicate.Values.
type Field string

const (
	FieldStatus       Field = "property_status.slug"
	FieldPropertyType Field = "property_type.slug"
	FieldListingType  Field = "listing_type.slug"
	FieldBedrooms     Field = "property.bedrooms"
	FieldBathrooms    Field = "property.bathrooms"
	FieldParking      Field = "property.parking_space"
	FieldPrice        Field = "listing.price"
	FieldFloorArea    Field = "property.floor_area"
	FieldBuildingSize Field = "property.building_size"
	FieldLotArea      Field = "property.lot_area"
	FieldDescription  Field = "listing.description"
	FieldCity         Field = "city.name"
	FieldID           Field = "listing.id"
	// FieldRelevance is the score column of the search shape's subquery.
	FieldRelevance Field = "description_similarity"
)

// Direction of a cursor bound relative to the descending ordering key.
type Direction int

const (
	// Forward resumes strictly below the key (the next, older rows).
	Forward Direction = iota + 1
	// Backward resumes strictly above the key (the previous, newer rows).
	Backward
)

// Predicate is one filter condition. It is plain data: equal inputs give
// equal predicates, and rendering is the only place SQL text is produced.
type Predicate struct {
	Kind      Kind
	Field     Field
	Values    []interface{}
	Direction Direction
}

func Equal(field Field, v interface{}) Predicate {
	return Predicate{Kind: KindEquality, Field: field, Values: []interface{}{v}}
}

// Between is an inclusive range.
func Between(field Field, lo, hi interface{}) Predicate {
	return Predicate{Kind: KindRange, Field: field, Values: []interface{}{lo, hi}}
}

// AtLeast is an inclusive lower bound.
func AtLeast(field Field, v interface{}) Predicate {
	return Predicate{Kind: KindFloor, Field: field, Values: []interface{}{v}}
}

// SimilarTo keeps rows whose similarity between field and term is strictly
// above threshold.
func SimilarTo(field Field, term string, threshold float64) Predicate {
	return Predicate{Kind: KindFuzzyThreshold, Field: field, Values: []interface{}{term, threshold}}
}

// Cursor is an exclusive bound on the ordering key.
func Cursor(field Field, key interface{}, dir Direction) Predicate {
	return Predicate{Kind: KindCursorBound, Field: field, Values: []interface{}{key}, Direction: dir}
}

// AreaField maps a property type to its authoritative size column.
func AreaField(propertyType string) Field {
	switch propertyType {
	case domain.PropertyTypeCondominium:
		return FieldFloorArea
	case domain.PropertyTypeWarehouse:
		return FieldBuildingSize
	default:
		return FieldLotArea
	}
}
