package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type WeatherForecastRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, forecasts []*types.WeatherForecast) error
	GetByLocation(ctx context.Context, tx *gorm.DB, location string, from, to time.Time) ([]*types.WeatherForecast, error)
}

type weatherForecastRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeatherForecastRepo(db *gorm.DB, baseLog *logger.Logger) WeatherForecastRepo {
	repoLog := baseLog.With("repo", "WeatherForecastRepo")
	return &weatherForecastRepo{db: db, log: repoLog}
}

// Upsert writes forecasts keyed on (location, forecast_date). A
// refreshed forecast for the same day overwrites the cached row.
func (wr *weatherForecastRepo) Upsert(ctx context.Context, tx *gorm.DB, forecasts []*types.WeatherForecast) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if len(forecasts) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "location"}, {Name: "forecast_date"}},
			UpdateAll: true,
		}).
		Create(&forecasts).Error
}

func (wr *weatherForecastRepo) GetByLocation(ctx context.Context, tx *gorm.DB, location string, from, to time.Time) ([]*types.WeatherForecast, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WeatherForecast
	if err := transaction.WithContext(ctx).
		Where("location = ? AND forecast_date >= ? AND forecast_date <= ?", location, from, to).
		Order("forecast_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
