package types

import (
	"time"

	"github.com/google/uuid"
)

// MarketplacePrice is the current asking price for a crop in a region.
// One row per (crop, region), overwritten on update.
type MarketplacePrice struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_marketplace_crop_region" json:"crop_id"`
	Crop       *Crop      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CropID;references:ID" json:"crop,omitempty"`
	Region     string     `gorm:"not null;uniqueIndex:idx_marketplace_crop_region;column:region" json:"region"`
	PricePerKg float64    `gorm:"not null;column:price_per_kg" json:"price_per_kg"`
	UpdatedBy  *uuid.UUID `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (MarketplacePrice) TableName() string { return "marketplace_crop_prices" }
