package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// DiseaseForecast is one predicted disease risk for a plan at a future
// week. Rows are written by the disease-forecast proxy and are
// read-only afterwards.
type DiseaseForecast struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropID             *uuid.UUID     `gorm:"type:uuid;index" json:"crop_id,omitempty"`
	CropPlanID         *uuid.UUID     `gorm:"type:uuid;index" json:"crop_plan_id,omitempty"`
	DiseaseName        string         `gorm:"not null;column:disease_name" json:"disease_name"`
	DiseaseType        string         `gorm:"column:disease_type" json:"disease_type"`
	ExpectedWeek       int            `gorm:"column:expected_week" json:"expected_week"`
	ProbabilityPercent float64        `gorm:"column:probability_percent" json:"probability_percent"`
	RiskLevel          string         `gorm:"not null;column:risk_level" json:"risk_level"`
	Symptoms           pq.StringArray `gorm:"type:text[];column:symptoms" json:"symptoms"`
	PreventiveMeasures pq.StringArray `gorm:"type:text[];column:preventive_measures" json:"preventive_measures"`
	OrganicTreatment   pq.StringArray `gorm:"type:text[];column:organic_treatment" json:"organic_treatment"`
	ChemicalTreatment  pq.StringArray `gorm:"type:text[];column:chemical_treatment" json:"chemical_treatment"`
	TreatmentTimeline  datatypes.JSON `gorm:"type:jsonb;column:treatment_timeline" json:"treatment_timeline"`
	ForecastDate       time.Time      `gorm:"not null;column:forecast_date" json:"forecast_date"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (DiseaseForecast) TableName() string { return "disease_forecasts" }
