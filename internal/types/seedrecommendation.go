package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type SeedRecommendation struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropID                uuid.UUID      `gorm:"type:uuid;index;not null" json:"crop_id"`
	Crop                  *Crop          `gorm:"constraint:OnDelete:CASCADE;foreignKey:CropID;references:ID" json:"crop,omitempty"`
	SeedVariety           string         `gorm:"not null;column:seed_variety" json:"seed_variety"`
	Source                string         `gorm:"column:source" json:"source"`
	BestSeason            string         `gorm:"column:best_season" json:"best_season"`
	MaturityDays          int            `gorm:"column:maturity_days" json:"maturity_days"`
	AvgYieldPerAcre       float64        `gorm:"column:avg_yield_per_acre" json:"avg_yield_per_acre"`
	FiveYearAvgYield      float64        `gorm:"column:five_year_avg_yield" json:"five_year_avg_yield"`
	GerminationRate       float64        `gorm:"column:germination_rate" json:"germination_rate"`
	PricePerKg            float64        `gorm:"column:price_per_kg" json:"price_per_kg"`
	ResistanceToPests     pq.StringArray `gorm:"type:text[];column:resistance_to_pests" json:"resistance_to_pests"`
	SoilSuitability       pq.StringArray `gorm:"type:text[];column:soil_suitability" json:"soil_suitability"`
	ClimateZones          pq.StringArray `gorm:"type:text[];column:climate_zones" json:"climate_zones"`
	WaterEfficiencyRating float64        `gorm:"column:water_efficiency_rating" json:"water_efficiency_rating"`
	State                 string         `gorm:"column:state" json:"state"`
	District              string         `gorm:"column:district" json:"district"`
	YieldHistory          datatypes.JSON `gorm:"type:jsonb;column:yield_history" json:"yield_history"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (SeedRecommendation) TableName() string { return "seed_recommendations" }
