package types

import (
	"time"

	"github.com/google/uuid"
)

type PriceHistory struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropID          uuid.UUID `gorm:"type:uuid;index;not null" json:"crop_id"`
	Crop            *Crop     `gorm:"constraint:OnDelete:CASCADE;foreignKey:CropID;references:ID" json:"crop,omitempty"`
	Year            int       `gorm:"not null;column:year" json:"year"`
	Month           int       `gorm:"not null;column:month" json:"month"`
	PricePerQuintal float64   `gorm:"not null;column:price_per_quintal" json:"price_per_quintal"`
	MarketName      string    `gorm:"column:market_name" json:"market_name"`
	Region          string    `gorm:"column:region" json:"region"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PriceHistory) TableName() string { return "crop_price_history" }
