package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/normalization"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// SuitabilityCriteria is what the farmer tells us about their field.
// SoilType, Season, and Location are required; the two flags tune the
// score.
type SuitabilityCriteria struct {
	SoilType      string
	Season        string
	Location      string
	DailyMarket   bool
	MultiCropping bool
}

// ScoredCrop is a catalog crop annotated with its suitability score.
type ScoredCrop struct {
	Crop        *types.Crop `json:"crop"`
	Suitability int         `json:"suitability"`
}

// SuitabilityService ranks the crop catalog against a farmer's field
// conditions without any AI call.
type SuitabilityService interface {
	Recommend(ctx context.Context, criteria SuitabilityCriteria) ([]ScoredCrop, error)
}

type suitabilityService struct {
	db       *gorm.DB
	log      *logger.Logger
	cropRepo repos.CropRepo
}

func NewSuitabilityService(db *gorm.DB, log *logger.Logger, cropRepo repos.CropRepo) SuitabilityService {
	serviceLog := log.With("service", "SuitabilityService")
	return &suitabilityService{db: db, log: serviceLog, cropRepo: cropRepo}
}

func (ss *suitabilityService) Recommend(ctx context.Context, criteria SuitabilityCriteria) ([]ScoredCrop, error) {
	criteria.SoilType = normalization.ParseInputString(criteria.SoilType)
	criteria.Season = normalization.ParseInputString(criteria.Season)
	criteria.Location = normalization.ParseInputString(criteria.Location)
	if criteria.SoilType == "" || criteria.Season == "" || criteria.Location == "" {
		return nil, fmt.Errorf("soilType, season, and location are required")
	}

	crops, err := ss.cropRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load crop catalog: %w", err)
	}
	return ScoreCrops(crops, criteria), nil
}

// ScoreCrops annotates every crop with a suitability score and returns
// them in descending score order. The sort is stable so crops with the
// same score keep their catalog order.
func ScoreCrops(crops []*types.Crop, criteria SuitabilityCriteria) []ScoredCrop {
	scored := make([]ScoredCrop, 0, len(crops))
	for _, crop := range crops {
		scored = append(scored, ScoredCrop{
			Crop:        crop,
			Suitability: SuitabilityScore(crop, criteria),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Suitability > scored[j].Suitability
	})
	return scored
}

// SuitabilityScore starts every crop at 70 and adds bonuses for
// daily-market fit, intercropping fit, and strong market demand. The
// ceiling is 99: no crop is ever a certainty.
func SuitabilityScore(crop *types.Crop, criteria SuitabilityCriteria) int {
	score := 70
	if criteria.DailyMarket && crop.DailyMarketCrop {
		score += 15
	}
	if criteria.MultiCropping && crop.IntercroppingPossibility != "" {
		score += 10
	}
	if crop.MarketDemandIndex > 70 {
		score += 5
	}
	if score > 99 {
		score = 99
	}
	return score
}
