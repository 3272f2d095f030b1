package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type FarmerTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*types.FarmerToken) ([]*types.FarmerToken, error)
	GetByFarmerIDs(ctx context.Context, tx *gorm.DB, farmerIDs []uuid.UUID) ([]*types.FarmerToken, error)
	GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.FarmerToken, error)
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.FarmerToken, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error
}

type farmerTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFarmerTokenRepo(db *gorm.DB, baseLog *logger.Logger) FarmerTokenRepo {
	repoLog := baseLog.With("repo", "FarmerTokenRepo")
	return &farmerTokenRepo{db: db, log: repoLog}
}

func (tr *farmerTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.FarmerToken) ([]*types.FarmerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tokens) == 0 {
		return []*types.FarmerToken{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (tr *farmerTokenRepo) GetByFarmerIDs(ctx context.Context, tx *gorm.DB, farmerIDs []uuid.UUID) ([]*types.FarmerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.FarmerToken
	if len(farmerIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("farmer_id IN ?", farmerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *farmerTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.FarmerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.FarmerToken
	if err := transaction.WithContext(ctx).
		Where("access_token = ?", accessToken).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (tr *farmerTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.FarmerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.FarmerToken
	if err := transaction.WithContext(ctx).
		Where("refresh_token = ?", refreshToken).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (tr *farmerTokenRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tokenIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", tokenIDs).
		Delete(&types.FarmerToken{}).Error
}
