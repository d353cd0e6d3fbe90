package listings

import (
	"net/url"

	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/validation"
)

// Range is an optional numeric bound pair. It filters only when both ends are set.
type Range struct {
	Min *float64
	Max *float64
}

// Complete reports whether both bounds are present.
func (r Range) Complete() bool {
	return r.Min != nil && r.Max != nil
}

// Criteria is the validated listing search input.
type Criteria struct {
	Search       string
	PropertyType string
	ListingType  string
	Price        Range
	Bedrooms     Range
	Bathrooms    Range
	CarSpaces    Range
	Sqm          Range
	Before       *float64
	After        *float64
}

// Searching reports whether results are ranked by text relevance.
func (c Criteria) Searching() bool {
	return c.Search != ""
}

// ParseCriteria validates a listing query string. The first invalid field,
// in declaration order, is returned as a *validation.FieldError.
func ParseCriteria(raw url.Values) (Criteria, error) {
	v := validation.NewValues(raw)
	var c Criteria
	var err error

	c.Search, _ = v.String("search")
	if c.PropertyType, _, err = v.Enum("property_type", domain.PropertyTypes); err != nil {
		return Criteria{}, err
	}
	if c.ListingType, _, err = v.Enum("listing_type", domain.ListingTypes); err != nil {
		return Criteria{}, err
	}

	ranges := []struct {
		min, max string
		dst      *Range
	}{
		{"min_price", "max_price", &c.Price},
		{"min_bedrooms", "max_bedrooms", &c.Bedrooms},
		{"min_bathrooms", "max_bathrooms", &c.Bathrooms},
		{"min_car_spaces", "max_car_spaces", &c.CarSpaces},
		{"min_sqm", "max_sqm", &c.Sqm},
	}
	for _, r := range ranges {
		if r.dst.Min, err = v.NonNegative(r.min); err != nil {
			return Criteria{}, err
		}
		if r.dst.Max, err = v.NonNegative(r.max); err != nil {
			return Criteria{}, err
		}
	}

	if c.Before, err = v.NonNegative("before"); err != nil {
		return Criteria{}, err
	}
	if c.After, err = v.NonNegative("after"); err != nil {
		return Criteria{}, err
	}
	// after wins when both cursors are supplied.
	if c.After != nil {
		c.Before = nil
	}
	return c, nil
}
