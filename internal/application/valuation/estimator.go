package valuation

import (
	"math"

	"listd-backend/internal/application/query"
	"listd-backend/internal/domain"
	"listd-backend/internal/pkg/currency"

	"gorm.io/gorm"
)

const (
	// CityThreshold is the minimum location similarity for a comparable.
	CityThreshold = 0.5
	// ComparableLimit caps the comparables listed per segment.
	ComparableLimit = 10
)

// Segments are estimated in this order.
var Segments = []string{domain.ListingTypeForSale, domain.ListingTypeForRent}

// Comparable is one listing used as evidence for an estimate.
type Comparable struct {
	ID                 int64   `gorm:"column:id" json:"id"`
	ListingTitle       string  `gorm:"column:listing_title" json:"listing_title"`
	ListingURL         string  `gorm:"column:listing_url" json:"listing_url"`
	PriceFormatted     string  `gorm:"column:price_formatted" json:"price_formatted"`
	CityNameSimilarity float64 `gorm:"column:city_name_similarity" json:"city_name_similarity"`
}

// Segment is the estimate for one market.
type Segment struct {
	AveragePrice      string       `json:"average_price"`
	PricePerSqm       string       `json:"price_per_sqm"`
	SimilarProperties []Comparable `json:"similar_properties"`

	Average float64 `json:"-"`
	PerSqm  float64 `json:"-"`
}

// Result is the valuation returned to the caller.
type Result struct {
	Sale         Segment `json:"sale"`
	Rent         Segment `json:"rent"`
	PropertyType string  `json:"property_type"`
	Sqm          float64 `json:"sqm"`
	// Recorded is true once the snapshot is committed.
	Recorded bool `json:"-"`
}

// bandScale is the decimal grid band edges are snapped to. Without it a
// decimal target such as 33.3 yields 39.959999999999994 and the listing
// stored at exactly 39.96 falls outside.
const bandScale = 1e6

// Band is the inclusive ±20% area tolerance around target.
func Band(target float64) (lo, hi float64) {
	return snap(target * 4 / 5), snap(target * 6 / 5)
}

func snap(v float64) float64 {
	return math.Round(v*bandScale) / bandScale
}

// Predicates selects the comparables of one segment.
func Predicates(req Request, segment string) []query.Predicate {
	lo, hi := Band(req.Sqm)
	return []query.Predicate{
		query.Equal(query.FieldStatus, domain.StatusAvailable),
		query.Equal(query.FieldPropertyType, req.PropertyType),
		query.Equal(query.FieldListingType, segment),
		query.SimilarTo(query.FieldCity, req.City, CityThreshold),
		query.AtLeast(query.FieldPrice, domain.MinimumListingPrice),
		query.Between(query.AreaField(req.PropertyType), lo, hi),
	}
}

type Estimator struct {
	Renderer query.Renderer
	Currency *currency.Formatter
}

// Estimate reads both segments on db, normally an open transaction.
func (e Estimator) Estimate(db *gorm.DB, req Request) (Result, error) {
	res := Result{PropertyType: req.PropertyType, Sqm: req.Sqm}
	for _, seg := range Segments {
		s, err := e.segment(db, req, seg)
		if err != nil {
			return Result{}, err
		}
		if seg == domain.ListingTypeForSale {
			res.Sale = s
		} else {
			res.Rent = s
		}
	}
	return res, nil
}

func (e Estimator) segment(db *gorm.DB, req Request, seg string) (Segment, error) {
	preds := Predicates(req, seg)

	var avg struct {
		AveragePrice float64 `gorm:"column:average_price"`
	}
	err := query.ListingRelation(db).
		Select("COALESCE(AVG(listing.price), 0) AS average_price").
		Scopes(e.Renderer.Where(preds...)).
		Scan(&avg).Error
	if err != nil {
		return Segment{}, domain.Execution("average "+seg, err)
	}

	score, vars := e.Renderer.Score(query.SimilarTo(query.FieldCity, req.City, CityThreshold))
	comps := []Comparable{}
	err = query.ListingRelation(db).
		Select("listing.id, listing.listing_title, listing.listing_url, listing.price_formatted, "+score+" AS city_name_similarity", vars...).
		Scopes(e.Renderer.Where(preds...)).
		Order("city_name_similarity DESC").
		Limit(ComparableLimit).
		Scan(&comps).Error
	if err != nil {
		return Segment{}, domain.Execution("comparables "+seg, err)
	}

	f := e.Currency
	if f == nil {
		f = currency.Default()
	}
	perSqm := 0.0
	if req.Sqm > 0 {
		perSqm = avg.AveragePrice / req.Sqm
	}
	return Segment{
		AveragePrice:      f.Format(avg.AveragePrice),
		PricePerSqm:       f.Format(perSqm),
		SimilarProperties: comps,
		Average:           avg.AveragePrice,
		PerSqm:            perSqm,
	}, nil
}
