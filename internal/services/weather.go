package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/normalization"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// WeatherDay is one day of the 7-day forecast in the model's response
// shape.
type WeatherDay struct {
	Date                string   `json:"date"`
	TemperatureHigh     float64  `json:"temperature_high"`
	TemperatureLow      float64  `json:"temperature_low"`
	Condition           string   `json:"condition"`
	PrecipitationChance float64  `json:"precipitation_chance"`
	Humidity            float64  `json:"humidity"`
	WindSpeed           float64  `json:"wind_speed"`
	FarmingPrecautions  []string `json:"farming_precautions"`
}

// WeatherForecastResult is the response envelope: the forecast plus
// the crop currently growing, when there is one.
type WeatherForecastResult struct {
	Forecast    []WeatherDay `json:"forecast"`
	CurrentCrop string       `json:"current_crop,omitempty"`
}

// WeatherService generates a 7-day AI forecast for a location and
// caches it in weather_forecasts, overwriting per (location, date).
type WeatherService interface {
	GetForecast(ctx context.Context, location string) (*WeatherForecastResult, error)
}

type weatherService struct {
	db          *gorm.DB
	log         *logger.Logger
	ai          AIClient
	planRepo    repos.CropPlanRepo
	weatherRepo repos.WeatherForecastRepo
}

func NewWeatherService(
	db *gorm.DB,
	log *logger.Logger,
	ai AIClient,
	planRepo repos.CropPlanRepo,
	weatherRepo repos.WeatherForecastRepo,
) WeatherService {
	serviceLog := log.With("service", "WeatherService")
	return &weatherService{db: db, log: serviceLog, ai: ai, planRepo: planRepo, weatherRepo: weatherRepo}
}

const weatherSystemPrompt = "You are an agricultural weather advisor. Provide realistic weather forecasts and farming precautions."

func (ws *weatherService) GetForecast(ctx context.Context, location string) (*WeatherForecastResult, error) {
	location = normalization.ParseInputString(location)
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

	cropLine := ""
	currentCrop := ""
	activePlan, err := ws.planRepo.GetFirstActive(ctx, nil)
	if err != nil {
		ws.log.Warn("Failed to look up active plan for forecast prompt", "error", err)
	} else if activePlan != nil && activePlan.Crop != nil {
		currentCrop = activePlan.Crop.Name
		cropLine = fmt.Sprintf("The farmer is currently growing %s. ", currentCrop)
	}

	userPrompt := fmt.Sprintf(`Generate a 7-day weather forecast for %s, India. %s

Return JSON format:
{
  "forecast": [
    {
      "date": "YYYY-MM-DD",
      "temperature_high": 32,
      "temperature_low": 22,
      "condition": "Sunny",
      "precipitation_chance": 10,
      "humidity": 65,
      "wind_speed": 15,
      "farming_precautions": ["Ensure adequate irrigation", "Monitor for pests in warm weather"]
    }
  ]
}`, location, cropLine)

	content, err := ws.ai.CallText(ctx, weatherSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Forecast []WeatherDay `json:"forecast"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(content)), &parsed); err != nil {
		return nil, fmt.Errorf("Failed to decode weather forecast: %w", err)
	}

	rows := make([]*types.WeatherForecast, 0, len(parsed.Forecast))
	for _, day := range parsed.Forecast {
		forecastDate, parseErr := time.Parse("2006-01-02", day.Date)
		if parseErr != nil {
			ws.log.Warn("Skipping forecast day with bad date", "date", day.Date)
			continue
		}
		rows = append(rows, &types.WeatherForecast{
			ID:                  uuid.New(),
			Location:            location,
			ForecastDate:        forecastDate,
			TemperatureHigh:     day.TemperatureHigh,
			TemperatureLow:      day.TemperatureLow,
			Condition:           day.Condition,
			PrecipitationChance: day.PrecipitationChance,
			Humidity:            day.Humidity,
			WindSpeed:           day.WindSpeed,
			FarmingPrecautions:  pq.StringArray(day.FarmingPrecautions),
		})
	}
	if err := ws.weatherRepo.Upsert(ctx, nil, rows); err != nil {
		ws.log.Warn("Failed to cache weather forecast", "location", location, "error", err)
	}

	return &WeatherForecastResult{Forecast: parsed.Forecast, CurrentCrop: currentCrop}, nil
}

// stripJSONFences tolerates models that wrap their JSON reply in a
// markdown code block.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
