package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
)

// SoilData is the farmer's soil test reading.
type SoilData struct {
	PH         float64 `json:"ph"`
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
	SoilType   string  `json:"soilType"`
	Moisture   float64 `json:"moisture,omitempty"`
}

// CropRecommendationInput is the payload for the AI crop recommender.
type CropRecommendationInput struct {
	SoilData    SoilData        `json:"soilData"`
	WeatherData json.RawMessage `json:"weatherData"`
	FarmSize    float64         `json:"farmSize"`
	Location    string          `json:"location"`
}

// CropRecommendationService asks the model for profit-ranked crops,
// feeding it the catalog and recent market history as context.
type CropRecommendationService interface {
	Recommend(ctx context.Context, input CropRecommendationInput) (json.RawMessage, error)
}

type cropRecommendationService struct {
	db          *gorm.DB
	log         *logger.Logger
	ai          AIClient
	cropRepo    repos.CropRepo
	historyRepo repos.PriceHistoryRepo
}

func NewCropRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	ai AIClient,
	cropRepo repos.CropRepo,
	historyRepo repos.PriceHistoryRepo,
) CropRecommendationService {
	serviceLog := log.With("service", "CropRecommendationService")
	return &cropRecommendationService{
		db:          db,
		log:         serviceLog,
		ai:          ai,
		cropRepo:    cropRepo,
		historyRepo: historyRepo,
	}
}

const cropRecommendationSystemPrompt = `You are an expert agricultural AI advisor for Indian farmers. Analyze the provided data and recommend the top 3-5 crops for maximum profitability.

Consider:
- Soil type, pH, nutrients (N, P, K)
- Current weather and seasonal patterns
- Farm size and location
- Short-term crops (30-180 days) for quick ROI
- Intercropping opportunities
- Historical market demand
- Disease resistance

For each recommended crop, provide:
1. Crop name
2. Expected yield per acre
3. Duration (days)
4. Intercropping probability (0-100%)
5. Companion crops for intercropping
6. Expected profit per acre
7. Key cultivation tips
8. Disease risk assessment`

func recommendCropsTool() ToolDef {
	return ToolDef{
		Name:        "recommend_crops",
		Description: "Return crop recommendations with detailed information",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recommendations": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"crop_name":                 map[string]any{"type": "string"},
							"expected_yield":            map[string]any{"type": "number"},
							"duration_days":             map[string]any{"type": "number"},
							"intercropping_probability": map[string]any{"type": "number"},
							"companion_crops":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"expected_profit_per_acre":  map[string]any{"type": "number"},
							"cultivation_tips":          map[string]any{"type": "string"},
							"disease_risk":              map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
						},
						"required": []string{"crop_name", "expected_yield", "duration_days", "intercropping_probability"},
					},
				},
			},
			"required": []string{"recommendations"},
		},
	}
}

func (rs *cropRecommendationService) Recommend(ctx context.Context, input CropRecommendationInput) (json.RawMessage, error) {
	crops, err := rs.cropRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load crop catalog: %w", err)
	}
	if len(crops) > 20 {
		crops = crops[:20]
	}
	history, err := rs.historyRepo.ListRecent(ctx, nil, 10)
	if err != nil {
		return nil, fmt.Errorf("Failed to load market history: %w", err)
	}

	cropsJSON, _ := json.Marshal(crops)
	historyJSON, _ := json.Marshal(history)
	weatherJSON := string(input.WeatherData)
	if weatherJSON == "" {
		weatherJSON = "{}"
	}

	userPrompt := fmt.Sprintf(`Farm Details:
- Location: %s
- Farm Size: %g acres
- Soil: pH %g, N:%g%%, P:%g%%, K:%g%%
- Soil Type: %s
- Weather: %s

Available Crops Database: %s
Market History: %s

Recommend the best crops for maximum profit in the next 6 months.`,
		input.Location, input.FarmSize,
		input.SoilData.PH, input.SoilData.Nitrogen, input.SoilData.Phosphorus, input.SoilData.Potassium,
		input.SoilData.SoilType, weatherJSON, cropsJSON, historyJSON)

	result, err := rs.ai.CallTool(ctx, cropRecommendationSystemPrompt, userPrompt, recommendCropsTool())
	if err != nil {
		return nil, err
	}
	rs.log.Info("AI crop recommendation generated", "location", input.Location)
	return result, nil
}
