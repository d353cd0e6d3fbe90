package query

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListingRelation joins a listing to its type, status, property, property
// type and city, aliased the way Field constants expect.
func ListingRelation(db *gorm.DB) *gorm.DB {
	return db.Table("listings AS listing").
		Joins("INNER JOIN listing_types AS listing_type ON listing_type.id = listing.listing_type_id").
		Joins("INNER JOIN property_status ON property_status.id = listing.property_status_id").
		Joins("INNER JOIN properties AS property ON property.listing_id = listing.id").
		Joins("INNER JOIN property_types AS property_type ON property_type.id = property.property_type_id").
		Joins("INNER JOIN cities AS city ON city.id = property.city_id")
}

// Renderer turns predicates into WHERE conditions with bound values.
type Renderer struct {
	Scorer Scorer
}

// Where appends every predicate, in order, as a bound condition.
func (r Renderer) Where(preds ...Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range preds {
			sql, vars := r.Condition(p)
			db = db.Where(sql, vars...)
		}
		return db
	}
}

// Condition renders one predicate as SQL with "?" placeholders and its values.
func (r Renderer) Condition(p Predicate) (string, []interface{}) {
	col := string(p.Field)
	switch p.Kind {
	case KindEquality:
		return col + " = ?", p.Values
	case KindRange:
		return col + " BETWEEN ? AND ?", p.Values
	case KindFloor:
		return col + " >= ?", p.Values
	case KindFuzzyThreshold:
		term, _ := p.Values[0].(string)
		expr := r.score(p.Field, term)
		return expr.SQL + " > ?", append(append([]interface{}{}, expr.Vars...), p.Values[1])
	case KindCursorBound:
		if p.Direction == Backward {
			return col + " > ?", p.Values
		}
		return col + " < ?", p.Values
	}
	panic(fmt.Sprintf("query: unknown predicate kind %d", p.Kind))
}

// Score renders the similarity expression a fuzzy predicate compares against,
// for use in SELECT and ORDER BY positions.
func (r Renderer) Score(p Predicate) (string, []interface{}) {
	term, _ := p.Values[0].(string)
	expr := r.score(p.Field, term)
	return expr.SQL, expr.Vars
}

func (r Renderer) score(field Field, term string) clause.Expr {
	scorer := r.Scorer
	if scorer == nil {
		scorer = Containment{}
	}
	if field == FieldCity {
		return scorer.Location(field, term)
	}
	return scorer.Text(field, term)
}
