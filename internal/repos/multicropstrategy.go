package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type MultiCropStrategyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, strategies []*types.MultiCropStrategy) ([]*types.MultiCropStrategy, error)
	GetByID(ctx context.Context, tx *gorm.DB, strategyID uuid.UUID) (*types.MultiCropStrategy, error)
	GetByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.MultiCropStrategy, error)
}

type multiCropStrategyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMultiCropStrategyRepo(db *gorm.DB, baseLog *logger.Logger) MultiCropStrategyRepo {
	repoLog := baseLog.With("repo", "MultiCropStrategyRepo")
	return &multiCropStrategyRepo{db: db, log: repoLog}
}

func (mr *multiCropStrategyRepo) Create(ctx context.Context, tx *gorm.DB, strategies []*types.MultiCropStrategy) ([]*types.MultiCropStrategy, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(strategies) == 0 {
		return []*types.MultiCropStrategy{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (mr *multiCropStrategyRepo) GetByID(ctx context.Context, tx *gorm.DB, strategyID uuid.UUID) (*types.MultiCropStrategy, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MultiCropStrategy
	if err := transaction.WithContext(ctx).
		Where("id = ?", strategyID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (mr *multiCropStrategyRepo) GetByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.MultiCropStrategy, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MultiCropStrategy
	if err := transaction.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
