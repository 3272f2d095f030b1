package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// WeatherForecast is a per-location per-date forecast used as a cache.
// The composite unique index is the upsert conflict target: refreshing
// a forecast overwrites the row instead of duplicating it.
type WeatherForecast struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Location            string         `gorm:"not null;uniqueIndex:idx_weather_location_date;column:location" json:"location"`
	ForecastDate        time.Time      `gorm:"not null;uniqueIndex:idx_weather_location_date;column:forecast_date" json:"forecast_date"`
	TemperatureHigh     float64        `gorm:"column:temperature_high" json:"temperature_high"`
	TemperatureLow      float64        `gorm:"column:temperature_low" json:"temperature_low"`
	Condition           string         `gorm:"column:condition" json:"condition"`
	PrecipitationChance float64        `gorm:"column:precipitation_chance" json:"precipitation_chance"`
	Humidity            float64        `gorm:"column:humidity" json:"humidity"`
	WindSpeed           float64        `gorm:"column:wind_speed" json:"wind_speed"`
	FarmingPrecautions  pq.StringArray `gorm:"type:text[];column:farming_precautions" json:"farming_precautions"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (WeatherForecast) TableName() string { return "weather_forecasts" }
