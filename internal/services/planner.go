package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// StartPlanInput is what a farmer submits when activating a crop plan.
type StartPlanInput struct {
	CropID         uuid.UUID
	AreaAcres      float64
	CompanionCrops []string
	FieldLocation  string
	MultiCropType  string
	Notes          string
}

// StartPlanResult carries the created plan plus the materialized
// roadmap. TasksError is non-nil when the plan row landed but the task
// inserts failed; the plan is NOT rolled back in that case and the
// caller surfaces the partial failure.
type StartPlanResult struct {
	Plan       *types.CropPlan
	Tasks      []*types.RoadmapTask
	TasksError error
}

// PlanService owns crop plan lifecycle: activation with roadmap
// materialization, listing, completion, and task completion.
type PlanService interface {
	StartPlan(ctx context.Context, farmerID uuid.UUID, input StartPlanInput) (*StartPlanResult, error)
	GetPlans(ctx context.Context, farmerID uuid.UUID) ([]*types.CropPlan, error)
	CompletePlan(ctx context.Context, farmerID, planID uuid.UUID, actualHarvestDate *time.Time) (*types.CropPlan, error)
	GetRoadmap(ctx context.Context, farmerID, planID uuid.UUID) ([]*types.RoadmapTask, error)
	CompleteRoadmapTask(ctx context.Context, farmerID, taskID uuid.UUID) error
	CompleteDailyTask(ctx context.Context, farmerID, taskID uuid.UUID) error
}

type planService struct {
	db              *gorm.DB
	log             *logger.Logger
	cropRepo        repos.CropRepo
	instructionRepo repos.CultivationInstructionRepo
	planRepo        repos.CropPlanRepo
	roadmapRepo     repos.RoadmapTaskRepo
	dailyRepo       repos.DailyTaskRepo
}

func NewPlanService(
	db *gorm.DB,
	log *logger.Logger,
	cropRepo repos.CropRepo,
	instructionRepo repos.CultivationInstructionRepo,
	planRepo repos.CropPlanRepo,
	roadmapRepo repos.RoadmapTaskRepo,
	dailyRepo repos.DailyTaskRepo,
) PlanService {
	serviceLog := log.With("service", "PlanService")
	return &planService{
		db:              db,
		log:             serviceLog,
		cropRepo:        cropRepo,
		instructionRepo: instructionRepo,
		planRepo:        planRepo,
		roadmapRepo:     roadmapRepo,
		dailyRepo:       dailyRepo,
	}
}

// StartPlan creates the plan row first and materializes roadmap tasks
// second, as two independent writes. A task-insert failure leaves the
// plan in place and is reported through TasksError rather than undoing
// the activation.
func (ps *planService) StartPlan(ctx context.Context, farmerID uuid.UUID, input StartPlanInput) (*StartPlanResult, error) {
	crops, err := ps.cropRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CropID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load crop: %w", err)
	}
	if len(crops) == 0 {
		return nil, fmt.Errorf("Crop not found")
	}
	crop := crops[0]

	startDate := truncateToDay(time.Now())
	plan := &types.CropPlan{
		ID:                  uuid.New(),
		FarmerID:            farmerID,
		CropID:              crop.ID,
		StartDate:           startDate,
		ExpectedHarvestDate: startDate.AddDate(0, 0, crop.DurationDays),
		Status:              types.PlanStatusActive,
		AreaAcres:           input.AreaAcres,
		CompanionCrops:      pq.StringArray(input.CompanionCrops),
		FieldLocation:       input.FieldLocation,
		MultiCropType:       input.MultiCropType,
		Notes:               input.Notes,
	}
	if _, err := ps.planRepo.Create(ctx, nil, []*types.CropPlan{plan}); err != nil {
		return nil, fmt.Errorf("Failed to create crop plan: %w", err)
	}
	plan.Crop = crop

	result := &StartPlanResult{Plan: plan}

	instructions, err := ps.instructionRepo.GetByCropID(ctx, nil, crop.ID)
	if err != nil {
		result.TasksError = fmt.Errorf("Failed to load cultivation instructions: %w", err)
		ps.log.Warn("Plan created but roadmap load failed", "plan_id", plan.ID, "error", err)
		return result, nil
	}
	if len(instructions) == 0 {
		result.Tasks = []*types.RoadmapTask{}
		return result, nil
	}

	tasks := make([]*types.RoadmapTask, 0, len(instructions))
	for _, instruction := range instructions {
		tasks = append(tasks, &types.RoadmapTask{
			ID:              uuid.New(),
			CropPlanID:      plan.ID,
			DayNumber:       ParseDayRangeStart(instruction.DayRange),
			TaskTitle:       instruction.CultivationPhase,
			TaskDescription: instruction.Instructions,
			TaskType:        "cultivation",
		})
	}
	if _, err := ps.roadmapRepo.Create(ctx, nil, tasks); err != nil {
		result.TasksError = fmt.Errorf("Failed to create roadmap tasks: %w", err)
		ps.log.Warn("Plan created but roadmap tasks failed", "plan_id", plan.ID, "error", err)
		return result, nil
	}
	result.Tasks = tasks
	ps.log.Info("Crop plan activated", "plan_id", plan.ID, "crop", crop.Name, "tasks", len(tasks))
	return result, nil
}

// ParseDayRangeStart extracts the lower bound of a day range such as
// "15-20" or "30". Anything unparseable schedules the task at day 0.
func ParseDayRangeStart(dayRange string) int {
	first := dayRange
	if idx := strings.Index(dayRange, "-"); idx >= 0 {
		first = dayRange[:idx]
	}
	day, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0
	}
	return day
}

func (ps *planService) GetPlans(ctx context.Context, farmerID uuid.UUID) ([]*types.CropPlan, error) {
	return ps.planRepo.GetByFarmerID(ctx, nil, farmerID)
}

// getOwnedPlan resolves a plan and rejects it when it belongs to a
// different farmer. Callers cannot tell "missing" from "not yours".
func (ps *planService) getOwnedPlan(ctx context.Context, farmerID, planID uuid.UUID) (*types.CropPlan, error) {
	plans, err := ps.planRepo.GetByIDs(ctx, nil, []uuid.UUID{planID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load crop plan: %w", err)
	}
	if len(plans) == 0 || plans[0].FarmerID != farmerID {
		return nil, fmt.Errorf("Crop plan not found")
	}
	return plans[0], nil
}

func (ps *planService) CompletePlan(ctx context.Context, farmerID, planID uuid.UUID, actualHarvestDate *time.Time) (*types.CropPlan, error) {
	plan, err := ps.getOwnedPlan(ctx, farmerID, planID)
	if err != nil {
		return nil, err
	}
	plan.Status = types.PlanStatusCompleted
	if actualHarvestDate != nil {
		plan.ActualHarvestDate = actualHarvestDate
	} else {
		now := time.Now()
		plan.ActualHarvestDate = &now
	}
	if err := ps.planRepo.Update(ctx, nil, plan); err != nil {
		return nil, fmt.Errorf("Failed to update crop plan: %w", err)
	}
	return plan, nil
}

func (ps *planService) GetRoadmap(ctx context.Context, farmerID, planID uuid.UUID) ([]*types.RoadmapTask, error) {
	if _, err := ps.getOwnedPlan(ctx, farmerID, planID); err != nil {
		return nil, err
	}
	return ps.roadmapRepo.GetByPlanIDs(ctx, nil, []uuid.UUID{planID})
}

func (ps *planService) CompleteRoadmapTask(ctx context.Context, farmerID, taskID uuid.UUID) error {
	tasks, err := ps.roadmapRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if err != nil {
		return fmt.Errorf("Failed to load roadmap task: %w", err)
	}
	if len(tasks) == 0 {
		return fmt.Errorf("Task not found")
	}
	if _, err := ps.getOwnedPlan(ctx, farmerID, tasks[0].CropPlanID); err != nil {
		return fmt.Errorf("Task not found")
	}
	return ps.roadmapRepo.MarkCompleted(ctx, nil, taskID, time.Now())
}

func (ps *planService) CompleteDailyTask(ctx context.Context, farmerID, taskID uuid.UUID) error {
	tasks, err := ps.dailyRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if err != nil {
		return fmt.Errorf("Failed to load daily task: %w", err)
	}
	if len(tasks) == 0 {
		return fmt.Errorf("Task not found")
	}
	if _, err := ps.getOwnedPlan(ctx, farmerID, tasks[0].CropPlanID); err != nil {
		return fmt.Errorf("Task not found")
	}
	return ps.dailyRepo.MarkCompleted(ctx, nil, taskID, time.Now())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
