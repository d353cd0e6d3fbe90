package listings

import (
	"listd-backend/internal/application/query"
	"listd-backend/internal/domain"
)

// Compose maps criteria to filter predicates in a fixed order. The cursor
// bound, when present, is always last. Count and page shapes both apply the
// whole list. The search relevance threshold is added by the compiler.
func Compose(c Criteria) []query.Predicate {
	preds := []query.Predicate{
		query.Equal(query.FieldStatus, domain.StatusAvailable),
		query.AtLeast(query.FieldPrice, domain.MinimumListingPrice),
	}
	if c.PropertyType != "" {
		preds = append(preds, query.Equal(query.FieldPropertyType, c.PropertyType))
	}
	if c.ListingType != "" {
		preds = append(preds, query.Equal(query.FieldListingType, c.ListingType))
	}

	ranged := []struct {
		field query.Field
		r     Range
	}{
		{query.FieldBedrooms, c.Bedrooms},
		{query.FieldBathrooms, c.Bathrooms},
		{query.FieldParking, c.CarSpaces},
		{query.FieldPrice, c.Price},
	}
	for _, f := range ranged {
		if f.r.Complete() {
			preds = append(preds, query.Between(f.field, *f.r.Min, *f.r.Max))
		}
	}
	if c.PropertyType != "" && c.Sqm.Complete() {
		preds = append(preds, query.Between(query.AreaField(c.PropertyType), *c.Sqm.Min, *c.Sqm.Max))
	}

	if cur, ok := cursor(c); ok {
		preds = append(preds, cur)
	}
	return preds
}

func cursor(c Criteria) (query.Predicate, bool) {
	key := query.FieldID
	if c.Searching() {
		key = query.FieldRelevance
	}
	switch {
	case c.After != nil:
		return query.Cursor(key, cursorValue(c, *c.After), query.Forward), true
	case c.Before != nil:
		return query.Cursor(key, cursorValue(c, *c.Before), query.Backward), true
	}
	return query.Predicate{}, false
}

// Identities bind as integers so the comparison stays exact.
func cursorValue(c Criteria, v float64) interface{} {
	if c.Searching() {
		return v
	}
	return int64(v)
}
