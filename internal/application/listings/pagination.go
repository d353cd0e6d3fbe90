package listings

import (
	"strconv"

	"listd-backend/internal/domain"
)

// Key is the ordering key of a row on the wire: the listing id in default
// mode, the relevance score in search mode. The zero Key encodes as null.
type Key struct {
	set   bool
	id    int64
	score float64
	isID  bool
}

func IDKey(id int64) Key {
	return Key{set: true, id: id, isID: true}
}

func ScoreKey(score float64) Key {
	return Key{set: true, score: score}
}

// Valid reports whether the key refers to a row.
func (k Key) Valid() bool {
	return k.set
}

func (k Key) MarshalJSON() ([]byte, error) {
	switch {
	case !k.set:
		return []byte("null"), nil
	case k.isID:
		return strconv.AppendInt(nil, k.id, 10), nil
	default:
		// Plain decimal: the cursor parser drops exponent markers.
		return strconv.AppendFloat(nil, k.score, 'f', -1, 64), nil
	}
}

// Page is one window of results with the bounds for the adjacent pages.
type Page struct {
	Before Key                 `json:"before"`
	After  Key                 `json:"after"`
	Count  int64               `json:"count"`
	Data   []domain.ListingRow `json:"data"`
}

// newPage restores descending order for backward reads and derives the
// bounds from the first and last rows.
func newPage(rows []domain.ListingRow, count int64, plan Plan) Page {
	if rows == nil {
		rows = []domain.ListingRow{}
	}
	if plan.Backward() {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	p := Page{Count: count, Data: rows}
	if len(rows) == 0 {
		return p
	}
	p.Before = keyOf(rows[0], plan)
	p.After = keyOf(rows[len(rows)-1], plan)
	return p
}

func keyOf(row domain.ListingRow, plan Plan) Key {
	if plan.Search == "" {
		return IDKey(row.ID)
	}
	if row.DescriptionSimilarity == nil {
		return ScoreKey(0)
	}
	return ScoreKey(*row.DescriptionSimilarity)
}
