package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type FarmerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, farmers []*types.Farmer) ([]*types.Farmer, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, farmerIDs []uuid.UUID) ([]*types.Farmer, error)
	GetByPhone(ctx context.Context, tx *gorm.DB, phone string) (*types.Farmer, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Farmer, error)
}

type farmerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFarmerRepo(db *gorm.DB, baseLog *logger.Logger) FarmerRepo {
	repoLog := baseLog.With("repo", "FarmerRepo")
	return &farmerRepo{db: db, log: repoLog}
}

func (fr *farmerRepo) Create(ctx context.Context, tx *gorm.DB, farmers []*types.Farmer) ([]*types.Farmer, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(farmers) == 0 {
		return []*types.Farmer{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&farmers).Error; err != nil {
		return nil, err
	}
	return farmers, nil
}

func (fr *farmerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, farmerIDs []uuid.UUID) ([]*types.Farmer, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Farmer
	if len(farmerIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", farmerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *farmerRepo) GetByPhone(ctx context.Context, tx *gorm.DB, phone string) (*types.Farmer, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Farmer
	if err := transaction.WithContext(ctx).
		Where("phone = ?", phone).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (fr *farmerRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Farmer, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Farmer
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
