package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/normalization"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// ProfileUpdateInput carries the editable profile fields. Nil pointers
// leave the stored value alone.
type ProfileUpdateInput struct {
	FullName           *string  `json:"full_name"`
	Phone              *string  `json:"phone"`
	Location           *string  `json:"location"`
	FarmSizeAcres      *float64 `json:"farm_size_acres"`
	LanguagePreference *string  `json:"language_preference"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, farmerID uuid.UUID) (*types.Profile, error)
	UpdateProfile(ctx context.Context, farmerID uuid.UUID, input ProfileUpdateInput) (*types.Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{db: db, log: serviceLog, profileRepo: profileRepo}
}

func (ps *profileService) GetProfile(ctx context.Context, farmerID uuid.UUID) (*types.Profile, error) {
	profile, err := ps.profileRepo.GetByFarmerID(ctx, nil, farmerID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load profile: %w", err)
	}
	return profile, nil
}

func (ps *profileService) UpdateProfile(ctx context.Context, farmerID uuid.UUID, input ProfileUpdateInput) (*types.Profile, error) {
	profile, err := ps.profileRepo.GetByFarmerID(ctx, nil, farmerID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load profile: %w", err)
	}
	if profile == nil {
		profile = &types.Profile{ID: uuid.New(), FarmerID: farmerID}
	}
	if input.FullName != nil {
		profile.FullName = normalization.ParseInputString(*input.FullName)
	}
	if input.Phone != nil {
		profile.Phone = normalization.NormalizePhone(*input.Phone)
	}
	if input.Location != nil {
		profile.Location = normalization.ParseInputString(*input.Location)
	}
	if input.FarmSizeAcres != nil {
		profile.FarmSizeAcres = *input.FarmSizeAcres
	}
	if input.LanguagePreference != nil {
		profile.LanguagePreference = normalization.ParseLowerInputString(*input.LanguagePreference)
	}
	if err := ps.profileRepo.Update(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("Failed to update profile: %w", err)
	}
	return profile, nil
}
