package listings

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"

	"listd-backend/internal/application/query"
	"listd-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestPlan_PostgresBindsEveryValue(t *testing.T) {
	db, _ := setupPostgresMock(t)
	c := mustCriteria(t, url.Values{
		"search":        {"pool'; DROP TABLE listings; --"},
		"property_type": {"house"},
		"listing_type":  {"for-sale"},
		"min_bedrooms":  {"2"},
		"max_bedrooms":  {"3"},
		"after":         {"0.5"},
	})
	plan := Compile(c, query.Renderer{Scorer: query.ScorerFor(db)})

	var rows []domain.ListingRow
	stmt := plan.Page(db.Session(&gorm.Session{DryRun: true})).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "word_similarity($")
	assert.Contains(t, sql, "ORDER BY description_similarity DESC")
	assert.Contains(t, sql, "LIMIT ")
	assert.NotContains(t, sql, "DROP TABLE")
	assert.NotContains(t, sql, "house")
	assert.NotContains(t, sql, "for-sale")
	assert.NotContains(t, sql, "available")

	assert.Contains(t, stmt.Vars, "pool'; DROP TABLE listings; --")
	assert.Contains(t, stmt.Vars, "house")
	assert.Contains(t, stmt.Vars, "for-sale")
	assert.Contains(t, stmt.Vars, domain.StatusAvailable)
	assert.Contains(t, stmt.Vars, 0.5)
}

func TestPlan_CountAndPageShareConditions(t *testing.T) {
	db, _ := setupPostgresMock(t)
	c := mustCriteria(t, url.Values{"property_type": {"warehouse"}, "min_sqm": {"100"}, "max_sqm": {"200"}, "before": {"7"}})
	plan := Compile(c, query.Renderer{Scorer: query.ScorerFor(db)})
	dry := db.Session(&gorm.Session{DryRun: true})

	var n int64
	count := plan.Count(dry).Count(&n).Statement
	var rows []domain.ListingRow
	page := plan.Page(dry).Find(&rows).Statement

	where := regexp.MustCompile(`WHERE (.*?)( ORDER BY|$)`)
	cm := where.FindStringSubmatch(count.SQL.String())
	pm := where.FindStringSubmatch(page.SQL.String())
	require.NotNil(t, cm)
	require.NotNil(t, pm)
	assert.Equal(t, cm[1], pm[1])
	require.GreaterOrEqual(t, len(page.Vars), len(count.Vars))
	assert.Equal(t, count.Vars, page.Vars[:len(count.Vars)])
	assert.Contains(t, pm[1], "property.building_size BETWEEN")
	assert.Contains(t, pm[1], "listing.id > $")
	assert.Contains(t, page.SQL.String(), "ORDER BY listing.id ASC")
}

func TestSearch_RollsBackOnQueryFailure(t *testing.T) {
	db, mock := setupPostgresMock(t)
	svc := &Service{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM listings AS listing")).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Search(context.Background(), Criteria{})
	var execErr *domain.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "count listings", execErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}
