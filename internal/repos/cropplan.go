package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type CropPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plans []*types.CropPlan) ([]*types.CropPlan, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.CropPlan, error)
	GetByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.CropPlan, error)
	GetActiveByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.CropPlan, error)
	GetFirstActive(ctx context.Context, tx *gorm.DB) (*types.CropPlan, error)
	Update(ctx context.Context, tx *gorm.DB, plan *types.CropPlan) error
}

type cropPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCropPlanRepo(db *gorm.DB, baseLog *logger.Logger) CropPlanRepo {
	repoLog := baseLog.With("repo", "CropPlanRepo")
	return &cropPlanRepo{db: db, log: repoLog}
}

func (pr *cropPlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.CropPlan) ([]*types.CropPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(plans) == 0 {
		return []*types.CropPlan{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (pr *cropPlanRepo) GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.CropPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.CropPlan
	if len(planIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Where("id IN ?", planIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *cropPlanRepo) GetByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.CropPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.CropPlan
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *cropPlanRepo) GetActiveByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.CropPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.CropPlan
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Where("farmer_id = ? AND status = ?", farmerID, types.PlanStatusActive).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetFirstActive returns any currently active plan; the weather
// forecaster uses it to mention the growing crop in its prompt.
func (pr *cropPlanRepo) GetFirstActive(ctx context.Context, tx *gorm.DB) (*types.CropPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.CropPlan
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Where("status = ?", types.PlanStatusActive).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (pr *cropPlanRepo) Update(ctx context.Context, tx *gorm.DB, plan *types.CropPlan) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(plan).Error
}
