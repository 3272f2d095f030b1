package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MultiCropStrategy struct {
	ID                     uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FarmerID               uuid.UUID      `gorm:"type:uuid;index;not null" json:"farmer_id"`
	Farmer                 *Farmer        `gorm:"constraint:OnDelete:CASCADE;foreignKey:FarmerID;references:ID" json:"farmer,omitempty"`
	StrategyName           string         `gorm:"not null;column:strategy_name" json:"strategy_name"`
	StrategyType           string         `gorm:"not null;column:strategy_type" json:"strategy_type"`
	CropsInvolved          pq.StringArray `gorm:"type:text[];not null;column:crops_involved" json:"crops_involved"`
	StartDate              *time.Time     `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate                *time.Time     `gorm:"column:end_date" json:"end_date,omitempty"`
	ExpectedTotalProfit    float64        `gorm:"column:expected_total_profit" json:"expected_total_profit"`
	LandUtilizationPercent float64        `gorm:"column:land_utilization_percent" json:"land_utilization_percent"`
	Notes                  string         `gorm:"column:notes" json:"notes"`
	CreatedAt              time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (MultiCropStrategy) TableName() string { return "multi_crop_strategies" }
