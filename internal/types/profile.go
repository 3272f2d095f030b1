package types

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the farm details shown on the profile page. One row
// per farmer, created on first successful passcode verification.
type Profile struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FarmerID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"farmer_id"`
	Farmer             *Farmer   `gorm:"constraint:OnDelete:CASCADE;foreignKey:FarmerID;references:ID" json:"farmer,omitempty"`
	FullName           string    `gorm:"column:full_name" json:"full_name"`
	Phone              string    `gorm:"column:phone" json:"phone"`
	Location           string    `gorm:"column:location" json:"location"`
	FarmSizeAcres      float64   `gorm:"column:farm_size_acres" json:"farm_size_acres"`
	LanguagePreference string    `gorm:"column:language_preference;default:te" json:"language_preference"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
