package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

type fakeCropRepo struct {
	crops []*types.Crop
}

func (f *fakeCropRepo) List(ctx context.Context, tx *gorm.DB, filter repos.CropFilter, offset, limit int) ([]*types.Crop, error) {
	return f.crops, nil
}
func (f *fakeCropRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Crop, error) {
	return f.crops, nil
}
func (f *fakeCropRepo) GetByIDs(ctx context.Context, tx *gorm.DB, cropIDs []uuid.UUID) ([]*types.Crop, error) {
	var out []*types.Crop
	for _, crop := range f.crops {
		for _, id := range cropIDs {
			if crop.ID == id {
				out = append(out, crop)
			}
		}
	}
	return out, nil
}
func (f *fakeCropRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Crop, error) {
	for _, crop := range f.crops {
		if crop.Name == name {
			return crop, nil
		}
	}
	return nil, nil
}
func (f *fakeCropRepo) UpsertByName(ctx context.Context, tx *gorm.DB, crops []*types.Crop) error {
	f.crops = append(f.crops, crops...)
	return nil
}
func (f *fakeCropRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.crops)), nil
}

type fakeInstructionRepo struct {
	instructions []*types.CultivationInstruction
	err          error
}

func (f *fakeInstructionRepo) Create(ctx context.Context, tx *gorm.DB, instructions []*types.CultivationInstruction) ([]*types.CultivationInstruction, error) {
	f.instructions = append(f.instructions, instructions...)
	return instructions, nil
}
func (f *fakeInstructionRepo) GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CultivationInstruction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.instructions, nil
}

type fakePlanRepo struct {
	plans []*types.CropPlan
}

func (f *fakePlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.CropPlan) ([]*types.CropPlan, error) {
	f.plans = append(f.plans, plans...)
	return plans, nil
}
func (f *fakePlanRepo) GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.CropPlan, error) {
	var out []*types.CropPlan
	for _, plan := range f.plans {
		for _, id := range planIDs {
			if plan.ID == id {
				out = append(out, plan)
			}
		}
	}
	return out, nil
}
func (f *fakePlanRepo) GetByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.CropPlan, error) {
	var out []*types.CropPlan
	for _, plan := range f.plans {
		if plan.FarmerID == farmerID {
			out = append(out, plan)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) GetActiveByFarmerID(ctx context.Context, tx *gorm.DB, farmerID uuid.UUID) ([]*types.CropPlan, error) {
	var out []*types.CropPlan
	for _, plan := range f.plans {
		if plan.FarmerID == farmerID && plan.Status == types.PlanStatusActive {
			out = append(out, plan)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) GetFirstActive(ctx context.Context, tx *gorm.DB) (*types.CropPlan, error) {
	for _, plan := range f.plans {
		if plan.Status == types.PlanStatusActive {
			return plan, nil
		}
	}
	return nil, nil
}
func (f *fakePlanRepo) Update(ctx context.Context, tx *gorm.DB, plan *types.CropPlan) error {
	for i, existing := range f.plans {
		if existing.ID == plan.ID {
			f.plans[i] = plan
		}
	}
	return nil
}

type fakeRoadmapRepo struct {
	tasks     []*types.RoadmapTask
	createErr error
}

func (f *fakeRoadmapRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.RoadmapTask) ([]*types.RoadmapTask, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.tasks = append(f.tasks, tasks...)
	return tasks, nil
}
func (f *fakeRoadmapRepo) GetByPlanIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.RoadmapTask, error) {
	var out []*types.RoadmapTask
	for _, task := range f.tasks {
		for _, id := range planIDs {
			if task.CropPlanID == id {
				out = append(out, task)
			}
		}
	}
	return out, nil
}
func (f *fakeRoadmapRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.RoadmapTask, error) {
	var out []*types.RoadmapTask
	for _, task := range f.tasks {
		for _, id := range taskIDs {
			if task.ID == id {
				out = append(out, task)
			}
		}
	}
	return out, nil
}
func (f *fakeRoadmapRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completedAt time.Time) error {
	for _, task := range f.tasks {
		if task.ID == taskID {
			task.IsCompleted = true
			task.CompletedAt = &completedAt
		}
	}
	return nil
}

type fakeDailyRepo struct {
	tasks []*types.DailyTask
}

func (f *fakeDailyRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.DailyTask) ([]*types.DailyTask, error) {
	f.tasks = append(f.tasks, tasks...)
	return tasks, nil
}
func (f *fakeDailyRepo) GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.DailyTask, error) {
	return f.tasks, nil
}
func (f *fakeDailyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.DailyTask, error) {
	var out []*types.DailyTask
	for _, task := range f.tasks {
		for _, id := range taskIDs {
			if task.ID == id {
				out = append(out, task)
			}
		}
	}
	return out, nil
}
func (f *fakeDailyRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completedAt time.Time) error {
	for _, task := range f.tasks {
		if task.ID == taskID {
			task.IsCompleted = true
			task.CompletedAt = &completedAt
		}
	}
	return nil
}

func TestParseDayRangeStart(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"15-20", 15},
		{"30", 30},
		{"1-5", 1},
		{" 7 - 10 ", 7},
		{"abc", 0},
		{"", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		if got := ParseDayRangeStart(tc.input); got != tc.want {
			t.Fatalf("ParseDayRangeStart(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func newPlannerFixture(t *testing.T, crop *types.Crop, instructions []*types.CultivationInstruction, roadmapErr error) (PlanService, *fakePlanRepo, *fakeRoadmapRepo, *fakeDailyRepo) {
	t.Helper()
	cropRepo := &fakeCropRepo{crops: []*types.Crop{crop}}
	instructionRepo := &fakeInstructionRepo{instructions: instructions}
	planRepo := &fakePlanRepo{}
	roadmapRepo := &fakeRoadmapRepo{createErr: roadmapErr}
	dailyRepo := &fakeDailyRepo{}
	service := NewPlanService(nil, newTestLogger(t), cropRepo, instructionRepo, planRepo, roadmapRepo, dailyRepo)
	return service, planRepo, roadmapRepo, dailyRepo
}

func TestStartPlanDatesAndTasks(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Tomato", DurationDays: 90}
	instructions := []*types.CultivationInstruction{
		{ID: uuid.New(), CropID: crop.ID, CultivationPhase: "Sowing", DayRange: "1-5", Instructions: "Sow treated seeds"},
		{ID: uuid.New(), CropID: crop.ID, CultivationPhase: "Growth", DayRange: "15-60", Instructions: "Irrigate weekly"},
		{ID: uuid.New(), CropID: crop.ID, CultivationPhase: "Harvest", DayRange: "bad", Instructions: "Pick ripe fruit"},
	}
	service, planRepo, _, _ := newPlannerFixture(t, crop, instructions, nil)

	result, err := service.StartPlan(context.Background(), uuid.New(), StartPlanInput{CropID: crop.ID, AreaAcres: 2})
	if err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}
	if result.TasksError != nil {
		t.Fatalf("unexpected tasks error: %v", result.TasksError)
	}
	if len(planRepo.plans) != 1 {
		t.Fatalf("expected one plan row, got %d", len(planRepo.plans))
	}
	plan := result.Plan
	if plan.Status != types.PlanStatusActive {
		t.Fatalf("expected active status, got %q", plan.Status)
	}
	wantHarvest := plan.StartDate.AddDate(0, 0, 90)
	if !plan.ExpectedHarvestDate.Equal(wantHarvest) {
		t.Fatalf("expected harvest %v, got %v", wantHarvest, plan.ExpectedHarvestDate)
	}
	if len(result.Tasks) != 3 {
		t.Fatalf("expected one task per instruction, got %d", len(result.Tasks))
	}
	wantDays := []int{1, 15, 0}
	for i, task := range result.Tasks {
		if task.DayNumber != wantDays[i] {
			t.Fatalf("task %d: expected day %d, got %d", i, wantDays[i], task.DayNumber)
		}
		if task.CropPlanID != plan.ID {
			t.Fatalf("task %d not linked to plan", i)
		}
	}
}

func TestStartPlanZeroInstructions(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Mint", DurationDays: 45}
	service, planRepo, _, _ := newPlannerFixture(t, crop, nil, nil)

	result, err := service.StartPlan(context.Background(), uuid.New(), StartPlanInput{CropID: crop.ID})
	if err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}
	if result.TasksError != nil {
		t.Fatalf("zero instructions is a success, got tasks error: %v", result.TasksError)
	}
	if len(result.Tasks) != 0 {
		t.Fatalf("expected zero tasks, got %d", len(result.Tasks))
	}
	if len(planRepo.plans) != 1 {
		t.Fatalf("plan should still be created")
	}
}

func TestStartPlanTaskFailureKeepsPlan(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Okra", DurationDays: 60}
	instructions := []*types.CultivationInstruction{
		{ID: uuid.New(), CropID: crop.ID, CultivationPhase: "Sowing", DayRange: "1-3", Instructions: "Sow seeds"},
	}
	service, planRepo, _, _ := newPlannerFixture(t, crop, instructions, errors.New("insert failed"))

	result, err := service.StartPlan(context.Background(), uuid.New(), StartPlanInput{CropID: crop.ID})
	if err != nil {
		t.Fatalf("StartPlan should not fail outright: %v", err)
	}
	if result.TasksError == nil {
		t.Fatalf("expected tasks error to surface")
	}
	if len(planRepo.plans) != 1 {
		t.Fatalf("plan must not be rolled back on task failure")
	}
}

func TestStartPlanUnknownCrop(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Okra", DurationDays: 60}
	service, _, _, _ := newPlannerFixture(t, crop, nil, nil)
	if _, err := service.StartPlan(context.Background(), uuid.New(), StartPlanInput{CropID: uuid.New()}); err == nil {
		t.Fatalf("expected error for unknown crop")
	}
}

func TestCompletePlanChecksOwnership(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Okra", DurationDays: 60}
	service, planRepo, _, _ := newPlannerFixture(t, crop, nil, nil)
	farmerID := uuid.New()
	result, err := service.StartPlan(context.Background(), farmerID, StartPlanInput{CropID: crop.ID})
	if err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}

	if _, err := service.CompletePlan(context.Background(), uuid.New(), result.Plan.ID, nil); err == nil {
		t.Fatalf("another farmer must not complete the plan")
	}

	plan, err := service.CompletePlan(context.Background(), farmerID, result.Plan.ID, nil)
	if err != nil {
		t.Fatalf("CompletePlan failed: %v", err)
	}
	if plan.Status != types.PlanStatusCompleted {
		t.Fatalf("expected completed status, got %q", plan.Status)
	}
	if plan.ActualHarvestDate == nil {
		t.Fatalf("expected actual harvest date to default to now")
	}
	if planRepo.plans[0].Status != types.PlanStatusCompleted {
		t.Fatalf("plan row not updated")
	}
}

func TestCompleteRoadmapTaskChecksOwnership(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Okra", DurationDays: 60}
	instructions := []*types.CultivationInstruction{
		{ID: uuid.New(), CropID: crop.ID, CultivationPhase: "Sowing", DayRange: "1-3", Instructions: "Sow seeds"},
	}
	service, _, roadmapRepo, _ := newPlannerFixture(t, crop, instructions, nil)
	farmerID := uuid.New()
	result, err := service.StartPlan(context.Background(), farmerID, StartPlanInput{CropID: crop.ID})
	if err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}
	taskID := result.Tasks[0].ID

	if err := service.CompleteRoadmapTask(context.Background(), uuid.New(), taskID); err == nil {
		t.Fatalf("another farmer must not complete the task")
	}
	if roadmapRepo.tasks[0].IsCompleted {
		t.Fatalf("task row flipped despite ownership rejection")
	}

	if err := service.CompleteRoadmapTask(context.Background(), farmerID, taskID); err != nil {
		t.Fatalf("owner CompleteRoadmapTask failed: %v", err)
	}
	if !roadmapRepo.tasks[0].IsCompleted || roadmapRepo.tasks[0].CompletedAt == nil {
		t.Fatalf("task not marked completed for its owner")
	}

	if err := service.CompleteRoadmapTask(context.Background(), farmerID, uuid.New()); err == nil {
		t.Fatalf("expected error for unknown task")
	}
}

func TestCompleteDailyTaskChecksOwnership(t *testing.T) {
	crop := &types.Crop{ID: uuid.New(), Name: "Okra", DurationDays: 60}
	service, _, _, dailyRepo := newPlannerFixture(t, crop, nil, nil)
	farmerID := uuid.New()
	result, err := service.StartPlan(context.Background(), farmerID, StartPlanInput{CropID: crop.ID})
	if err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}
	task := &types.DailyTask{ID: uuid.New(), CropPlanID: result.Plan.ID, TaskDay: 1, TaskTitle: "Water the field", TaskCategory: "watering"}
	dailyRepo.tasks = append(dailyRepo.tasks, task)

	if err := service.CompleteDailyTask(context.Background(), uuid.New(), task.ID); err == nil {
		t.Fatalf("another farmer must not complete the task")
	}
	if task.IsCompleted {
		t.Fatalf("task row flipped despite ownership rejection")
	}

	if err := service.CompleteDailyTask(context.Background(), farmerID, task.ID); err != nil {
		t.Fatalf("owner CompleteDailyTask failed: %v", err)
	}
	if !task.IsCompleted || task.CompletedAt == nil {
		t.Fatalf("task not marked completed for its owner")
	}
}
