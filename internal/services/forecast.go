package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// WeatherReading is the current-conditions snapshot several AI proxies
// accept from the client.
type WeatherReading struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// DiseaseForecastInput describes the crop under forecast. CropPlanID
// is optional: when present the forecasts are persisted against the
// plan.
type DiseaseForecastInput struct {
	CropPlanID  *uuid.UUID     `json:"cropPlanId"`
	CropName    string         `json:"cropName"`
	CropAgeDays int            `json:"cropAgeDays"`
	WeatherData WeatherReading `json:"weatherData"`
	SoilData    SoilData       `json:"soilData"`
}

type diseaseForecastPayload struct {
	Forecasts []struct {
		WeekNumber      int     `json:"week_number"`
		DiseaseName     string  `json:"disease_name"`
		Probability     float64 `json:"probability"`
		RiskLevel       string  `json:"risk_level"`
		Symptoms        string  `json:"symptoms"`
		Prevention      string  `json:"prevention"`
		Treatment       string  `json:"treatment"`
		TreatmentTiming string  `json:"treatment_timing"`
	} `json:"forecasts"`
}

// DiseaseForecastService predicts disease risks for the next month
// and caches them per plan when a plan id is supplied.
type DiseaseForecastService interface {
	Forecast(ctx context.Context, input DiseaseForecastInput) (json.RawMessage, error)
}

type diseaseForecastService struct {
	db           *gorm.DB
	log          *logger.Logger
	ai           AIClient
	forecastRepo repos.DiseaseForecastRepo
}

func NewDiseaseForecastService(db *gorm.DB, log *logger.Logger, ai AIClient, forecastRepo repos.DiseaseForecastRepo) DiseaseForecastService {
	serviceLog := log.With("service", "DiseaseForecastService")
	return &diseaseForecastService{db: db, log: serviceLog, ai: ai, forecastRepo: forecastRepo}
}

const diseaseForecastSystemPrompt = `You are an expert plant pathologist and agricultural disease forecasting AI for Indian farming conditions.

Analyze weather patterns, soil conditions, and crop age to predict disease risks over the next 30 days.

Provide weekly disease forecasts including:
- Disease name
- Probability (0-100%)
- Risk level (low/medium/high)
- Symptoms to watch for
- Preventive measures (organic and chemical)
- Treatment recommendations
- Optimal treatment timing`

func forecastDiseasesTool() ToolDef {
	return ToolDef{
		Name:        "forecast_diseases",
		Description: "Return weekly disease forecasts",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"forecasts": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"week_number":      map[string]any{"type": "number"},
							"disease_name":     map[string]any{"type": "string"},
							"probability":      map[string]any{"type": "number"},
							"risk_level":       map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
							"symptoms":         map[string]any{"type": "string"},
							"prevention":       map[string]any{"type": "string"},
							"treatment":        map[string]any{"type": "string"},
							"treatment_timing": map[string]any{"type": "string"},
						},
						"required": []string{"week_number", "disease_name", "probability", "risk_level"},
					},
				},
			},
			"required": []string{"forecasts"},
		},
	}
}

func (ds *diseaseForecastService) Forecast(ctx context.Context, input DiseaseForecastInput) (json.RawMessage, error) {
	if input.CropName == "" {
		return nil, fmt.Errorf("cropName is required")
	}

	userPrompt := fmt.Sprintf(`Crop Information:
- Crop: %s
- Age: %d days
- Weather: Temperature %g°C, Humidity %g%%, Rainfall %gmm
- Soil: pH %g, Moisture %g%%

Forecast disease risks for the next 4 weeks.`,
		input.CropName, input.CropAgeDays,
		input.WeatherData.Temperature, input.WeatherData.Humidity, input.WeatherData.Rainfall,
		input.SoilData.PH, input.SoilData.Moisture)

	result, err := ds.ai.CallTool(ctx, diseaseForecastSystemPrompt, userPrompt, forecastDiseasesTool())
	if err != nil {
		return nil, err
	}

	// Persistence is best-effort: a storage failure must not cost the
	// farmer the forecast they already paid a model call for.
	if input.CropPlanID != nil {
		if err := ds.persist(ctx, *input.CropPlanID, result); err != nil {
			ds.log.Warn("Failed to store disease forecasts", "crop_plan_id", *input.CropPlanID, "error", err)
		}
	}
	return result, nil
}

func (ds *diseaseForecastService) persist(ctx context.Context, planID uuid.UUID, raw json.RawMessage) error {
	var payload diseaseForecastPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("Failed to decode forecasts: %w", err)
	}
	now := time.Now()
	rows := make([]*types.DiseaseForecast, 0, len(payload.Forecasts))
	for _, f := range payload.Forecasts {
		timeline, _ := json.Marshal(map[string]string{
			"treatment": f.Treatment,
			"timing":    f.TreatmentTiming,
		})
		rows = append(rows, &types.DiseaseForecast{
			ID:                 uuid.New(),
			CropPlanID:         &planID,
			DiseaseName:        f.DiseaseName,
			ExpectedWeek:       f.WeekNumber,
			ProbabilityPercent: f.Probability,
			RiskLevel:          f.RiskLevel,
			Symptoms:           pq.StringArray{f.Symptoms},
			PreventiveMeasures: pq.StringArray{f.Prevention},
			TreatmentTimeline:  timeline,
			ForecastDate:       now,
		})
	}
	_, err := ds.forecastRepo.Create(ctx, nil, rows)
	return err
}
