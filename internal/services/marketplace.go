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

// PriceUpdateInput is a farmer-submitted asking price for a crop in a
// region.
type PriceUpdateInput struct {
	CropID     uuid.UUID `json:"crop_id"`
	Region     string    `json:"region"`
	PricePerKg float64   `json:"price_per_kg"`
}

// MarketplaceService reads and updates the regional price board.
type MarketplaceService interface {
	GetPrices(ctx context.Context, region string) ([]*types.MarketplacePrice, error)
	UpdatePrice(ctx context.Context, farmerID uuid.UUID, input PriceUpdateInput) (*types.MarketplacePrice, error)
}

type marketplaceService struct {
	db        *gorm.DB
	log       *logger.Logger
	priceRepo repos.MarketplacePriceRepo
	cropRepo  repos.CropRepo
}

func NewMarketplaceService(db *gorm.DB, log *logger.Logger, priceRepo repos.MarketplacePriceRepo, cropRepo repos.CropRepo) MarketplaceService {
	serviceLog := log.With("service", "MarketplaceService")
	return &marketplaceService{db: db, log: serviceLog, priceRepo: priceRepo, cropRepo: cropRepo}
}

func (ms *marketplaceService) GetPrices(ctx context.Context, region string) ([]*types.MarketplacePrice, error) {
	return ms.priceRepo.ListByRegion(ctx, nil, region)
}

func (ms *marketplaceService) UpdatePrice(ctx context.Context, farmerID uuid.UUID, input PriceUpdateInput) (*types.MarketplacePrice, error) {
	if input.CropID == uuid.Nil {
		return nil, fmt.Errorf("crop_id is required")
	}
	if input.Region == "" {
		return nil, fmt.Errorf("region is required")
	}
	if input.PricePerKg <= 0 {
		return nil, fmt.Errorf("price_per_kg must be positive")
	}
	crops, err := ms.cropRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CropID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load crop: %w", err)
	}
	if len(crops) == 0 {
		return nil, fmt.Errorf("Crop not found")
	}
	price := &types.MarketplacePrice{
		ID:         uuid.New(),
		CropID:     input.CropID,
		Region:     input.Region,
		PricePerKg: input.PricePerKg,
		UpdatedBy:  &farmerID,
	}
	if err := ms.priceRepo.Upsert(ctx, nil, price); err != nil {
		return nil, fmt.Errorf("Failed to upsert marketplace price: %w", err)
	}
	price.Crop = crops[0]
	return price, nil
}
