package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Crop is one row of the crops_master catalog. Rows are created by the
// bulk importer or the database seeder and read everywhere else.
type Crop struct {
	ID                       uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                     string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Category                 string         `gorm:"not null;column:category" json:"category"`
	DurationDays             int            `gorm:"not null;column:duration_days" json:"duration_days"`
	Season                   string         `gorm:"column:season" json:"season"`
	WaterRequirement         string         `gorm:"column:water_requirement" json:"water_requirement"`
	ProfitIndex              string         `gorm:"column:profit_index" json:"profit_index"`
	SoilType                 pq.StringArray `gorm:"type:text[];column:soil_type" json:"soil_type"`
	ClimateTolerance         pq.StringArray `gorm:"type:text[];column:climate_tolerance" json:"climate_tolerance"`
	CompanionCrops           pq.StringArray `gorm:"type:text[];column:companion_crops" json:"companion_crops"`
	DailyMarketCrop          bool           `gorm:"column:daily_market_crop;default:false" json:"daily_market_crop"`
	HomeGrowable             bool           `gorm:"column:home_growable;default:false" json:"home_growable"`
	MarketDemandIndex        float64        `gorm:"column:market_demand_index" json:"market_demand_index"`
	RestaurantUsageIndex     float64        `gorm:"column:restaurant_usage_index" json:"restaurant_usage_index"`
	HealthBenefits           string         `gorm:"column:health_benefits" json:"health_benefits"`
	MedicalBenefits          string         `gorm:"column:medical_benefits" json:"medical_benefits"`
	Vitamins                 string         `gorm:"column:vitamins" json:"vitamins"`
	Proteins                 string         `gorm:"column:proteins" json:"proteins"`
	IntercroppingPossibility string         `gorm:"column:intercropping_possibility" json:"intercropping_possibility"`
	CreatedAt                time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Crop) TableName() string { return "crops_master" }
