package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type CultivationInstructionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, instructions []*types.CultivationInstruction) ([]*types.CultivationInstruction, error)
	GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CultivationInstruction, error)
}

type cultivationInstructionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCultivationInstructionRepo(db *gorm.DB, baseLog *logger.Logger) CultivationInstructionRepo {
	repoLog := baseLog.With("repo", "CultivationInstructionRepo")
	return &cultivationInstructionRepo{db: db, log: repoLog}
}

func (ir *cultivationInstructionRepo) Create(ctx context.Context, tx *gorm.DB, instructions []*types.CultivationInstruction) ([]*types.CultivationInstruction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(instructions) == 0 {
		return []*types.CultivationInstruction{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&instructions).Error; err != nil {
		return nil, err
	}
	return instructions, nil
}

func (ir *cultivationInstructionRepo) GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CultivationInstruction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.CultivationInstruction
	if err := transaction.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
