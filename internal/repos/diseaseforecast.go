package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type DiseaseForecastRepo interface {
	Create(ctx context.Context, tx *gorm.DB, forecasts []*types.DiseaseForecast) ([]*types.DiseaseForecast, error)
	GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.DiseaseForecast, error)
}

type diseaseForecastRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiseaseForecastRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseForecastRepo {
	repoLog := baseLog.With("repo", "DiseaseForecastRepo")
	return &diseaseForecastRepo{db: db, log: repoLog}
}

func (dr *diseaseForecastRepo) Create(ctx context.Context, tx *gorm.DB, forecasts []*types.DiseaseForecast) ([]*types.DiseaseForecast, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(forecasts) == 0 {
		return []*types.DiseaseForecast{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&forecasts).Error; err != nil {
		return nil, err
	}
	return forecasts, nil
}

func (dr *diseaseForecastRepo) GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.DiseaseForecast, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DiseaseForecast
	if err := transaction.WithContext(ctx).
		Where("crop_plan_id = ?", planID).
		Order("expected_week ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
