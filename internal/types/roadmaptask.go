package types

import (
	"time"

	"github.com/google/uuid"
)

// RoadmapTask is one scheduled step of a crop plan, anchored to a day
// offset from the plan's start date. Tasks are created in bulk at plan
// activation and only ever mutated by completion.
type RoadmapTask struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropPlanID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"crop_plan_id"`
	CropPlan        *CropPlan  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CropPlanID;references:ID" json:"crop_plan,omitempty"`
	DayNumber       int        `gorm:"not null;column:day_number" json:"day_number"`
	TaskTitle       string     `gorm:"not null;column:task_title" json:"task_title"`
	TaskDescription string     `gorm:"column:task_description" json:"task_description"`
	TaskType        string     `gorm:"column:task_type" json:"task_type"`
	IsCompleted     bool       `gorm:"column:is_completed;default:false" json:"is_completed"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	ReminderSent    bool       `gorm:"column:reminder_sent;default:false" json:"reminder_sent"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (RoadmapTask) TableName() string { return "crop_roadmap_tasks" }
