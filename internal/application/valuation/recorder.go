package valuation

import (
	"encoding/json"

	"listd-backend/internal/application/query"
	"listd-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Recorder persists a valuation snapshot for an identified requester.
type Recorder struct {
	Renderer query.Renderer
}

// Record runs inside the caller's transaction; any error means the caller
// must roll back.
func (r Recorder) Record(tx *gorm.DB, req Request, res Result) (*domain.Valuation, error) {
	userID, err := r.upsertUser(tx, req.UserID)
	if err != nil {
		return nil, domain.Execution("upsert user", err)
	}
	cityID, err := r.bestCity(tx, req.City)
	if err != nil {
		return nil, domain.Execution("match city", err)
	}
	typeID, err := propertyTypeID(tx, req.PropertyType)
	if err != nil {
		return nil, domain.Execution("property type", err)
	}

	sale, err := json.Marshal(res.Sale.SimilarProperties)
	if err != nil {
		return nil, err
	}
	rent, err := json.Marshal(res.Rent.SimilarProperties)
	if err != nil {
		return nil, err
	}
	v := &domain.Valuation{
		UserID:                          userID,
		CityID:                          cityID,
		Address:                         req.Address,
		PropertySize:                    req.Sqm,
		PropertyTypeID:                  typeID,
		EstimatedAveragePriceSale:       res.Sale.AveragePrice,
		EstimatedAveragePricePerSqmSale: res.Sale.PricePerSqm,
		TopTenSimilarPropertiesSale:     datatypes.JSON(sale),
		EstimatedAveragePriceRent:       res.Rent.AveragePrice,
		EstimatedAveragePricePerSqmRent: res.Rent.PricePerSqm,
		TopTenSimilarPropertiesRent:     datatypes.JSON(rent),
		GooglePlacesDataID:              req.GooglePlacesDataID,
		GooglePlacesDetailsID:           req.GooglePlacesDetailsID,
	}
	if err := tx.Create(v).Error; err != nil {
		return nil, domain.Execution("insert valuation", err)
	}
	return v, nil
}

// upsertUser inserts the requester unless it exists; an existing row wins.
func (r Recorder) upsertUser(tx *gorm.DB, clerkID string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_id"}},
		DoNothing: true,
	}).Create(&domain.User{ClerkID: clerkID}).Error
	if err != nil {
		return 0, err
	}
	var u domain.User
	if err := tx.Where("clerk_id = ?", clerkID).First(&u).Error; err != nil {
		return 0, err
	}
	return u.ID, nil
}

// bestCity returns the single most similar city above the threshold, or nil.
func (r Recorder) bestCity(tx *gorm.DB, city string) (*int64, error) {
	match := query.SimilarTo(query.FieldCity, city, CityThreshold)
	score, vars := r.Renderer.Score(match)
	var rows []struct {
		ID int64 `gorm:"column:id"`
	}
	err := tx.Table("cities AS city").
		Select("city.id, "+score+" AS city_name_similarity", vars...).
		Scopes(r.Renderer.Where(match)).
		Order("city_name_similarity DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0].ID, nil
}

func propertyTypeID(tx *gorm.DB, slug string) (*int64, error) {
	var rows []domain.PropertyType
	if err := tx.Where("slug = ?", slug).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0].ID, nil
}
