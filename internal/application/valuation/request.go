package valuation

import (
	"net/url"

	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/validation"
)

// MinimumSqm is the smallest target area accepted.
const MinimumSqm = 20

// Request is a validated valuation input. UserID is the requester's external
// identity; empty means the estimate is not recorded.
type Request struct {
	UserID                string
	PropertyType          string
	Sqm                   float64
	City                  string
	Address               string
	GooglePlacesDataID    *string
	GooglePlacesDetailsID *string
}

// ParseRequest validates the valuation query string, first failure wins.
func ParseRequest(raw url.Values) (Request, error) {
	v := validation.NewValues(raw)
	var r Request
	var err error

	r.UserID, _ = v.String("user_id")
	if r.PropertyType, err = v.RequiredEnum("property_type", domain.PropertyTypes); err != nil {
		return Request{}, err
	}
	sqm, err := v.AtLeast("sqm", MinimumSqm)
	if err != nil {
		return Request{}, err
	}
	if sqm == nil {
		return Request{}, validation.Invalid("sqm", "required")
	}
	r.Sqm = *sqm
	if r.City, err = v.RequiredString("city"); err != nil {
		return Request{}, err
	}
	if r.Address, err = v.RequiredString("address"); err != nil {
		return Request{}, err
	}
	if s, ok := v.String("google_places_data_id"); ok {
		r.GooglePlacesDataID = &s
	}
	if s, ok := v.String("google_places_details_id"); ok {
		r.GooglePlacesDetailsID = &s
	}
	return r, nil
}
