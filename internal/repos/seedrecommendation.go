package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type SeedRecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, seeds []*types.SeedRecommendation) ([]*types.SeedRecommendation, error)
	GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.SeedRecommendation, error)
}

type seedRecommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSeedRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) SeedRecommendationRepo {
	repoLog := baseLog.With("repo", "SeedRecommendationRepo")
	return &seedRecommendationRepo{db: db, log: repoLog}
}

func (sr *seedRecommendationRepo) Create(ctx context.Context, tx *gorm.DB, seeds []*types.SeedRecommendation) ([]*types.SeedRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(seeds) == 0 {
		return []*types.SeedRecommendation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&seeds).Error; err != nil {
		return nil, err
	}
	return seeds, nil
}

func (sr *seedRecommendationRepo) GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.SeedRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.SeedRecommendation
	if err := transaction.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Order("avg_yield_per_acre DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
