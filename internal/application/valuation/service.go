package valuation

import (
	"context"
	"time"

	"listd-backend/internal/application/query"
	"listd-backend/internal/domain"
	"listd-backend/internal/metrics"
	"listd-backend/internal/pkg/currency"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
	// Renderer defaults to the scorer matching DB's dialect.
	Renderer *query.Renderer
	Currency *currency.Formatter
	Timeout  time.Duration
}

func (s *Service) renderer() query.Renderer {
	if s.Renderer != nil {
		return *s.Renderer
	}
	return query.Renderer{Scorer: query.ScorerFor(s.DB)}
}

// Estimate computes both segments and, when the request names a user,
// records the snapshot in the same transaction. A failed recording rolls
// everything back and is logged; the computed estimate is still returned
// with Recorded false.
func (s *Service) Estimate(ctx context.Context, req Request) (Result, error) {
	if s.DB == nil {
		return Result{}, domain.ErrDatabaseURLMissing
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	r := s.renderer()

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		metrics.ObserveValuation(metrics.OutcomeEstimateError)
		return Result{}, domain.Execution("begin valuation", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	res, err := Estimator{Renderer: r, Currency: s.Currency}.Estimate(tx, req)
	if err != nil {
		tx.Rollback()
		metrics.ObserveValuation(metrics.OutcomeEstimateError)
		return Result{}, err
	}

	if req.UserID == "" {
		if err := tx.Commit().Error; err != nil {
			metrics.ObserveValuation(metrics.OutcomeEstimateError)
			return Result{}, domain.Execution("commit valuation", err)
		}
		metrics.ObserveValuation(metrics.OutcomeEstimated)
		return res, nil
	}

	if _, err := (Recorder{Renderer: r}).Record(tx, req, res); err != nil {
		tx.Rollback()
		s.recordFailed(req, err)
		return res, nil
	}
	if err := tx.Commit().Error; err != nil {
		s.recordFailed(req, domain.Execution("commit valuation", err))
		return res, nil
	}
	res.Recorded = true
	metrics.ObserveValuation(metrics.OutcomeRecorded)
	return res, nil
}

func (s *Service) recordFailed(req Request, err error) {
	metrics.ObserveValuation(metrics.OutcomeRecordFailed)
	log.Error().Err(err).
		Str("user_id", req.UserID).
		Str("property_type", req.PropertyType).
		Float64("sqm", req.Sqm).
		Msg("valuation: snapshot not recorded, rolled back")
}
