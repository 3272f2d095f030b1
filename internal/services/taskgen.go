package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// TaskGenerationInput asks the model for a day-by-day cultivation
// roadmap for one plan.
type TaskGenerationInput struct {
	CropPlanID        uuid.UUID       `json:"cropPlanId"`
	CropName          string          `json:"cropName"`
	SoilType          string          `json:"soilType"`
	DurationDays      int             `json:"durationDays"`
	IntercroppingPlan json.RawMessage `json:"intercroppingPlan"`
}

type generatedTasksPayload struct {
	Tasks []struct {
		DayNumber       int    `json:"day_number"`
		Title           string `json:"title"`
		Description     string `json:"description"`
		Category        string `json:"category"`
		Priority        string `json:"priority"`
		MaterialsNeeded string `json:"materials_needed"`
	} `json:"tasks"`
}

// TaskGenerationService produces AI daily tasks for a plan and stores
// them. Unlike the disease forecast, a failed insert here fails the
// call: the whole point of the endpoint is the stored roadmap.
type TaskGenerationService interface {
	Generate(ctx context.Context, input TaskGenerationInput) (json.RawMessage, error)
}

type taskGenerationService struct {
	db        *gorm.DB
	log       *logger.Logger
	ai        AIClient
	dailyRepo repos.DailyTaskRepo
}

func NewTaskGenerationService(db *gorm.DB, log *logger.Logger, ai AIClient, dailyRepo repos.DailyTaskRepo) TaskGenerationService {
	serviceLog := log.With("service", "TaskGenerationService")
	return &taskGenerationService{db: db, log: serviceLog, ai: ai, dailyRepo: dailyRepo}
}

const taskGenerationSystemPrompt = `You are an expert agricultural advisor creating detailed day-by-day cultivation roadmaps for Indian farmers.

Generate daily tasks from Day 1 to harvest covering:
- Land preparation
- Seed treatment and sowing
- Irrigation schedules
- Fertilizer application (organic and chemical with exact quantities)
- Pest management
- Weeding schedules
- Intercrop management (if applicable)
- Disease monitoring
- Harvest preparation

For each task, specify:
- Day number
- Task title
- Detailed instructions
- Materials needed with quantities
- Priority level
- Category (irrigation/fertilizer/pest_control/weeding/monitoring/harvest)`

func generateTasksTool() ToolDef {
	return ToolDef{
		Name:        "generate_tasks",
		Description: "Generate daily cultivation tasks",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tasks": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"day_number":  map[string]any{"type": "number"},
							"title":       map[string]any{"type": "string"},
							"description": map[string]any{"type": "string"},
							"category": map[string]any{
								"type": "string",
								"enum": []string{"irrigation", "fertilizer", "pest_control", "weeding", "monitoring", "harvest", "preparation"},
							},
							"priority":         map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
							"materials_needed": map[string]any{"type": "string"},
						},
						"required": []string{"day_number", "title", "description", "category", "priority"},
					},
				},
			},
			"required": []string{"tasks"},
		},
	}
}

func (ts *taskGenerationService) Generate(ctx context.Context, input TaskGenerationInput) (json.RawMessage, error) {
	if input.CropPlanID == uuid.Nil {
		return nil, fmt.Errorf("cropPlanId is required")
	}
	if input.CropName == "" {
		return nil, fmt.Errorf("cropName is required")
	}

	intercropLine := ""
	if len(input.IntercroppingPlan) > 0 {
		intercropLine = fmt.Sprintf("Intercropping: %s\n", string(input.IntercroppingPlan))
	}
	userPrompt := fmt.Sprintf(`Generate daily cultivation tasks for:
Crop: %s
Duration: %d days
Soil Type: %s
%s
Create a comprehensive day-by-day roadmap.`,
		input.CropName, input.DurationDays, input.SoilType, intercropLine)

	result, err := ts.ai.CallTool(ctx, taskGenerationSystemPrompt, userPrompt, generateTasksTool())
	if err != nil {
		return nil, err
	}

	var payload generatedTasksPayload
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, fmt.Errorf("Failed to decode generated tasks: %w", err)
	}
	rows := make([]*types.DailyTask, 0, len(payload.Tasks))
	for _, task := range payload.Tasks {
		rows = append(rows, &types.DailyTask{
			ID:              uuid.New(),
			CropPlanID:      input.CropPlanID,
			TaskDay:         task.DayNumber,
			TaskTitle:       task.Title,
			TaskDescription: task.Description,
			TaskCategory:    task.Category,
			Priority:        task.Priority,
			MaterialsNeeded: task.MaterialsNeeded,
		})
	}
	if _, err := ts.dailyRepo.Create(ctx, nil, rows); err != nil {
		return nil, fmt.Errorf("Failed to store generated tasks: %w", err)
	}
	ts.log.Info("Daily tasks generated", "crop_plan_id", input.CropPlanID, "count", len(rows))
	return result, nil
}
