package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// CropDetail bundles one crop with its cultivation instructions and
// seed recommendations for the detail page.
type CropDetail struct {
	Crop                *types.Crop                     `json:"crop"`
	Instructions        []*types.CultivationInstruction `json:"cultivation_instructions"`
	SeedRecommendations []*types.SeedRecommendation     `json:"seed_recommendations"`
}

// CropService is read access to the crop catalog.
type CropService interface {
	ListCrops(ctx context.Context, filter repos.CropFilter, offset, limit int) ([]*types.Crop, int64, error)
	GetCrop(ctx context.Context, cropID uuid.UUID) (*CropDetail, error)
	GetPriceHistory(ctx context.Context, cropID uuid.UUID) ([]*types.PriceHistory, error)
}

type cropService struct {
	db              *gorm.DB
	log             *logger.Logger
	cropRepo        repos.CropRepo
	instructionRepo repos.CultivationInstructionRepo
	seedRepo        repos.SeedRecommendationRepo
	historyRepo     repos.PriceHistoryRepo
}

func NewCropService(
	db *gorm.DB,
	log *logger.Logger,
	cropRepo repos.CropRepo,
	instructionRepo repos.CultivationInstructionRepo,
	seedRepo repos.SeedRecommendationRepo,
	historyRepo repos.PriceHistoryRepo,
) CropService {
	serviceLog := log.With("service", "CropService")
	return &cropService{
		db:              db,
		log:             serviceLog,
		cropRepo:        cropRepo,
		instructionRepo: instructionRepo,
		seedRepo:        seedRepo,
		historyRepo:     historyRepo,
	}
}

const defaultCropPageSize = 20

func (cs *cropService) ListCrops(ctx context.Context, filter repos.CropFilter, offset, limit int) ([]*types.Crop, int64, error) {
	if limit <= 0 {
		limit = defaultCropPageSize
	}
	if offset < 0 {
		offset = 0
	}
	crops, err := cs.cropRepo.List(ctx, nil, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("Failed to list crops: %w", err)
	}
	total, err := cs.cropRepo.Count(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("Failed to count crops: %w", err)
	}
	return crops, total, nil
}

func (cs *cropService) GetCrop(ctx context.Context, cropID uuid.UUID) (*CropDetail, error) {
	crops, err := cs.cropRepo.GetByIDs(ctx, nil, []uuid.UUID{cropID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load crop: %w", err)
	}
	if len(crops) == 0 {
		return nil, nil
	}
	instructions, err := cs.instructionRepo.GetByCropID(ctx, nil, cropID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load cultivation instructions: %w", err)
	}
	seeds, err := cs.seedRepo.GetByCropID(ctx, nil, cropID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load seed recommendations: %w", err)
	}
	return &CropDetail{
		Crop:                crops[0],
		Instructions:        instructions,
		SeedRecommendations: seeds,
	}, nil
}

func (cs *cropService) GetPriceHistory(ctx context.Context, cropID uuid.UUID) ([]*types.PriceHistory, error) {
	return cs.historyRepo.GetByCropID(ctx, nil, cropID)
}
