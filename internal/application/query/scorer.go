package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scorer renders a continuous 0..1 similarity between a column and a bound
// term. The term is always a bound variable.
type Scorer interface {
	// Text scores free text against a long column (search relevance).
	Text(column Field, term string) clause.Expr
	// Location scores a short place name against a column (city matching).
	Location(column Field, term string) clause.Expr
}

// Trigram scores with the pg_trgm extension.
type Trigram struct{}

func (Trigram) Text(column Field, term string) clause.Expr {
	return clause.Expr{SQL: "word_similarity(?, " + string(column) + ")", Vars: []interface{}{term}}
}

func (Trigram) Location(column Field, term string) clause.Expr {
	return clause.Expr{SQL: "strict_word_similarity(?, " + string(column) + ")", Vars: []interface{}{term}}
}

// Containment scores by case-insensitive containment: the length of the
// shorter string over the longer one when either contains the other, else 0.
// It needs nothing beyond core SQLite functions.
type Containment struct{}

func (Containment) Text(column Field, term string) clause.Expr {
	return containment(column, term)
}

func (Containment) Location(column Field, term string) clause.Expr {
	return containment(column, term)
}

func containment(column Field, term string) clause.Expr {
	c := string(column)
	return clause.Expr{
		SQL: "(CASE" +
			" WHEN instr(lower(" + c + "), lower(?)) > 0 THEN length(?) * 1.0 / max(length(" + c + "), length(?), 1)" +
			" WHEN instr(lower(?), lower(" + c + ")) > 0 THEN length(" + c + ") * 1.0 / max(length(" + c + "), length(?), 1)" +
			" ELSE 0.0 END)",
		Vars: []interface{}{term, term, term, term, term},
	}
}

// ScorerFor picks the scorer matching the connection's dialect.
func ScorerFor(db *gorm.DB) Scorer {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return Trigram{}
	}
	return Containment{}
}
