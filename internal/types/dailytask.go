package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyTask is an AI-generated cultivation task. Unlike roadmap tasks,
// these come from the task-generation proxy rather than from static
// cultivation instructions.
type DailyTask struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CropPlanID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"crop_plan_id"`
	CropPlan        *CropPlan  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CropPlanID;references:ID" json:"crop_plan,omitempty"`
	TaskDay         int        `gorm:"not null;column:task_day" json:"task_day"`
	TaskTitle       string     `gorm:"not null;column:task_title" json:"task_title"`
	TaskDescription string     `gorm:"column:task_description" json:"task_description"`
	TaskCategory    string     `gorm:"not null;column:task_category" json:"task_category"`
	Priority        string     `gorm:"column:priority" json:"priority"`
	MaterialsNeeded string     `gorm:"column:materials_needed" json:"materials_needed"`
	IsCompleted     bool       `gorm:"column:is_completed;default:false" json:"is_completed"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (DailyTask) TableName() string { return "daily_tasks" }
