package types

import (
	"time"

	"github.com/google/uuid"
)

type FarmerToken struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FarmerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"farmer_id"`
	Farmer       *Farmer   `gorm:"constraint:OnDelete:CASCADE;foreignKey:FarmerID;references:ID" json:"farmer,omitempty"`
	AccessToken  string    `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FarmerToken) TableName() string { return "farmer_token" }
