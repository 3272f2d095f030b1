package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// CropFilter narrows catalog listings. Zero values mean "no filter".
type CropFilter struct {
	Category     string
	Season       string
	SoilType     string
	HomeGrowable *bool
	DailyMarket  *bool
}

type CropRepo interface {
	List(ctx context.Context, tx *gorm.DB, filter CropFilter, offset, limit int) ([]*types.Crop, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Crop, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, cropIDs []uuid.UUID) ([]*types.Crop, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Crop, error)
	UpsertByName(ctx context.Context, tx *gorm.DB, crops []*types.Crop) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type cropRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCropRepo(db *gorm.DB, baseLog *logger.Logger) CropRepo {
	repoLog := baseLog.With("repo", "CropRepo")
	return &cropRepo{db: db, log: repoLog}
}

func (cr *cropRepo) List(ctx context.Context, tx *gorm.DB, filter CropFilter, offset, limit int) ([]*types.Crop, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	query := transaction.WithContext(ctx).Model(&types.Crop{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Season != "" {
		query = query.Where("season = ?", filter.Season)
	}
	if filter.SoilType != "" {
		query = query.Where("? = ANY(soil_type)", filter.SoilType)
	}
	if filter.HomeGrowable != nil {
		query = query.Where("home_growable = ?", *filter.HomeGrowable)
	}
	if filter.DailyMarket != nil {
		query = query.Where("daily_market_crop = ?", *filter.DailyMarket)
	}
	var results []*types.Crop
	if err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cropRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Crop, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Crop
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cropRepo) GetByIDs(ctx context.Context, tx *gorm.DB, cropIDs []uuid.UUID) ([]*types.Crop, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Crop
	if len(cropIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", cropIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cropRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Crop, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Crop
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// UpsertByName overwrites catalog rows on the unique crop name, so
// re-running an import refreshes instead of duplicating.
func (cr *cropRepo) UpsertByName(ctx context.Context, tx *gorm.DB, crops []*types.Crop) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(crops) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(&crops).Error
}

func (cr *cropRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Crop{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
