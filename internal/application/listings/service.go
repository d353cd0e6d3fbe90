package listings

import (
	"context"
	"errors"
	"time"

	"listd-backend/internal/application/query"
	"listd-backend/internal/domain"
	"listd-backend/internal/metrics"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
	// Renderer defaults to the scorer matching DB's dialect.
	Renderer *query.Renderer
	// Timeout bounds each call, connection acquisition included. Zero means none.
	Timeout time.Duration
}

func (s *Service) renderer() query.Renderer {
	if s.Renderer != nil {
		return *s.Renderer
	}
	return query.Renderer{Scorer: query.ScorerFor(s.DB)}
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// Search runs the count and page shapes of one plan in a single transaction.
func (s *Service) Search(ctx context.Context, c Criteria) (Page, error) {
	if s.DB == nil {
		return Page{}, domain.ErrDatabaseURLMissing
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	plan := Compile(c, s.renderer())
	metrics.ObserveSearch(c.Searching())

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Page{}, domain.Execution("begin search", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var count int64
	if err := plan.Count(tx).Count(&count).Error; err != nil {
		tx.Rollback()
		return Page{}, domain.Execution("count listings", err)
	}
	var rows []domain.ListingRow
	if err := plan.Page(tx).Scan(&rows).Error; err != nil {
		tx.Rollback()
		return Page{}, domain.Execution("page listings", err)
	}
	if err := tx.Commit().Error; err != nil {
		return Page{}, domain.Execution("commit search", err)
	}

	for i := range rows {
		rows[i].ListingTitle = titleCase(rows[i].ListingTitle)
	}
	return newPage(rows, count, plan), nil
}

// GetListing loads one listing with its images. Status is not filtered, so a
// listing linked from an old page still resolves.
func (s *Service) GetListing(ctx context.Context, id int64) (*domain.ListingDetail, error) {
	if s.DB == nil {
		return nil, domain.ErrDatabaseURLMissing
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	db := s.DB.WithContext(ctx)
	var row domain.ListingRow
	res := query.ListingRelation(db).Select(projection).Where(string(query.FieldID)+" = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, domain.Execution("get listing", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrListingNotFound
	}
	row.ListingTitle = titleCase(row.ListingTitle)

	detail := &domain.ListingDetail{ListingRow: row, PropertyImages: []domain.PropertyImage{}}
	err := db.Table("property_images").
		Select("property_images.id, property_images.property_id, property_images.url").
		Joins("INNER JOIN properties ON properties.id = property_images.property_id").
		Where("properties.listing_id = ?", id).
		Order("property_images.id").
		Find(&detail.PropertyImages).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Execution("get listing images", err)
	}
	return detail, nil
}

// titleCase mirrors SQL INITCAP: first letter of each word upper, rest lower.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
