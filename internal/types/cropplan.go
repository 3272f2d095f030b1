package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
)

// CropPlan is a farmer's decision to grow one crop starting on a date.
// It owns roadmap and daily tasks; there is no cascade back from task
// failures to the plan row.
type CropPlan struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FarmerID            uuid.UUID      `gorm:"type:uuid;index;not null" json:"farmer_id"`
	Farmer              *Farmer        `gorm:"constraint:OnDelete:CASCADE;foreignKey:FarmerID;references:ID" json:"farmer,omitempty"`
	CropID              uuid.UUID      `gorm:"type:uuid;index;not null" json:"crop_id"`
	Crop                *Crop          `gorm:"foreignKey:CropID;references:ID" json:"crop,omitempty"`
	SeedID              *uuid.UUID     `gorm:"type:uuid" json:"seed_id,omitempty"`
	StartDate           time.Time      `gorm:"not null;column:start_date" json:"start_date"`
	ExpectedHarvestDate time.Time      `gorm:"not null;column:expected_harvest_date" json:"expected_harvest_date"`
	ActualHarvestDate   *time.Time     `gorm:"column:actual_harvest_date" json:"actual_harvest_date,omitempty"`
	Status              string         `gorm:"column:status;default:active" json:"status"`
	AreaAcres           float64        `gorm:"column:area_acres" json:"area_acres"`
	CompanionCrops      pq.StringArray `gorm:"type:text[];column:companion_crops" json:"companion_crops"`
	FieldLocation       string         `gorm:"column:field_location" json:"field_location"`
	MultiCropType       string         `gorm:"column:multi_crop_type" json:"multi_crop_type"`
	Notes               string         `gorm:"column:notes" json:"notes"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CropPlan) TableName() string { return "crop_plans" }
