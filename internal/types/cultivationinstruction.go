package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CultivationInstruction is one phase of growing a crop. DayRange is a
// free-text range such as "15-20"; plan activation schedules a roadmap
// task at the range's lower bound.
type CultivationInstruction struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropID           uuid.UUID      `gorm:"type:uuid;index;not null" json:"crop_id"`
	Crop             *Crop          `gorm:"constraint:OnDelete:CASCADE;foreignKey:CropID;references:ID" json:"crop,omitempty"`
	CultivationPhase string         `gorm:"not null;column:cultivation_phase" json:"cultivation_phase"`
	DayRange         string         `gorm:"not null;column:day_range" json:"day_range"`
	Instructions     string         `gorm:"not null;column:instructions" json:"instructions"`
	Tips             pq.StringArray `gorm:"type:text[];column:tips" json:"tips"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (CultivationInstruction) TableName() string { return "crop_cultivation_instructions" }
