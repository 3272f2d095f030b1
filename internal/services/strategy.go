package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// StrategyInput creates a multi-crop strategy (intercropping, relay,
// rotation) covering several crops on one field.
type StrategyInput struct {
	StrategyName           string     `json:"strategy_name"`
	StrategyType           string     `json:"strategy_type"`
	CropsInvolved          []string   `json:"crops_involved"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	ExpectedTotalProfit    float64    `json:"expected_total_profit"`
	LandUtilizationPercent float64    `json:"land_utilization_percent"`
	Notes                  string     `json:"notes"`
}

type StrategyService interface {
	CreateStrategy(ctx context.Context, farmerID uuid.UUID, input StrategyInput) (*types.MultiCropStrategy, error)
	GetStrategies(ctx context.Context, farmerID uuid.UUID) ([]*types.MultiCropStrategy, error)
	GetStrategy(ctx context.Context, farmerID, strategyID uuid.UUID) (*types.MultiCropStrategy, error)
}

type strategyService struct {
	db           *gorm.DB
	log          *logger.Logger
	strategyRepo repos.MultiCropStrategyRepo
}

func NewStrategyService(db *gorm.DB, log *logger.Logger, strategyRepo repos.MultiCropStrategyRepo) StrategyService {
	serviceLog := log.With("service", "StrategyService")
	return &strategyService{db: db, log: serviceLog, strategyRepo: strategyRepo}
}

func (ss *strategyService) CreateStrategy(ctx context.Context, farmerID uuid.UUID, input StrategyInput) (*types.MultiCropStrategy, error) {
	if input.StrategyName == "" {
		return nil, fmt.Errorf("strategy_name is required")
	}
	if input.StrategyType == "" {
		return nil, fmt.Errorf("strategy_type is required")
	}
	if len(input.CropsInvolved) == 0 {
		return nil, fmt.Errorf("crops_involved must not be empty")
	}
	strategy := &types.MultiCropStrategy{
		ID:                     uuid.New(),
		FarmerID:               farmerID,
		StrategyName:           input.StrategyName,
		StrategyType:           input.StrategyType,
		CropsInvolved:          pq.StringArray(input.CropsInvolved),
		StartDate:              input.StartDate,
		EndDate:                input.EndDate,
		ExpectedTotalProfit:    input.ExpectedTotalProfit,
		LandUtilizationPercent: input.LandUtilizationPercent,
		Notes:                  input.Notes,
	}
	if _, err := ss.strategyRepo.Create(ctx, nil, []*types.MultiCropStrategy{strategy}); err != nil {
		return nil, fmt.Errorf("Failed to create strategy: %w", err)
	}
	return strategy, nil
}

func (ss *strategyService) GetStrategies(ctx context.Context, farmerID uuid.UUID) ([]*types.MultiCropStrategy, error) {
	return ss.strategyRepo.GetByFarmerID(ctx, nil, farmerID)
}

func (ss *strategyService) GetStrategy(ctx context.Context, farmerID, strategyID uuid.UUID) (*types.MultiCropStrategy, error) {
	strategy, err := ss.strategyRepo.GetByID(ctx, nil, strategyID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load strategy: %w", err)
	}
	if strategy == nil || strategy.FarmerID != farmerID {
		return nil, nil
	}
	return strategy, nil
}
