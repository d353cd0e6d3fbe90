package listings

import (
	"listd-backend/internal/application/query"

	"gorm.io/gorm"
)

// PageSize is fixed; callers cannot change it.
const PageSize = 10

const projection = `listing.id,
	listing.listing_title,
	listing.listing_url,
	listing.price,
	listing.price_formatted,
	listing.price_for_rent_per_sqm,
	listing.price_for_sale_per_sqm,
	listing.price_for_rent_per_sqm_formatted,
	listing.price_for_sale_per_sqm_formatted,
	listing_type.name AS listing_type,
	property_status.name AS property_status,
	property_type.name AS property_type,
	listing.sub_category,
	property.building_name,
	property.subdivision_name,
	property.project_name,
	property.floor_area,
	property.lot_area,
	property.building_size,
	property.bedrooms,
	property.bathrooms,
	property.parking_space,
	city.name AS city,
	property.area,
	property.address,
	property.features,
	property.main_image_url,
	listing.latitude,
	listing.longitude,
	listing.description,
	listing.created_at`

// Plan is a compiled listing query. Count and Page render the same
// predicate slice through the same Renderer.
type Plan struct {
	Renderer   query.Renderer
	Predicates []query.Predicate
	// Search, when set, switches to the relevance-ranked shape.
	Search string
}

// Compile builds the plan for validated criteria.
func Compile(c Criteria, r query.Renderer) Plan {
	return Plan{Renderer: r, Predicates: Compose(c), Search: c.Search}
}

// OrderKey is the column pages are ordered and bounded by.
func (p Plan) OrderKey() query.Field {
	if p.Search != "" {
		return query.FieldRelevance
	}
	return query.FieldID
}

// Backward reports whether the plan resumes before a cursor.
func (p Plan) Backward() bool {
	for _, pr := range p.Predicates {
		if pr.Kind == query.KindCursorBound {
			return pr.Direction == query.Backward
		}
	}
	return false
}

// Count renders the count shape.
func (p Plan) Count(db *gorm.DB) *gorm.DB {
	return p.filtered(db)
}

// Page renders the page shape: projection, order and limit. A backward
// page is read ascending; the caller restores descending order.
func (p Plan) Page(db *gorm.DB) *gorm.DB {
	dir := " DESC"
	if p.Backward() {
		dir = " ASC"
	}
	q := p.filtered(db)
	if p.Search == "" {
		q = q.Select(projection)
	}
	return q.Order(string(p.OrderKey()) + dir).Limit(PageSize)
}

// filtered returns a fresh statement with every predicate applied. In search
// mode the non-cursor predicates and the relevance threshold go into a scored
// subquery and the cursor bounds its score column.
func (p Plan) filtered(db *gorm.DB) *gorm.DB {
	if p.Search == "" {
		return query.ListingRelation(db).Scopes(p.Renderer.Where(p.Predicates...))
	}

	var filters, outer []query.Predicate
	for _, pr := range p.Predicates {
		if pr.Kind == query.KindCursorBound {
			outer = append(outer, pr)
			continue
		}
		filters = append(filters, pr)
	}
	relevance := query.SimilarTo(query.FieldDescription, p.Search, 0)
	score, vars := p.Renderer.Score(relevance)
	filters = append(filters, relevance)

	scored := query.ListingRelation(db).
		Select(projection+",\n\t"+score+" AS "+string(query.FieldRelevance), vars...).
		Scopes(p.Renderer.Where(filters...))
	return db.Table("(?) AS similarity", scored).Scopes(p.Renderer.Where(outer...))
}
