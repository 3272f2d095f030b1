package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

const (
	CalendarStatusCompleted = "completed"
	CalendarStatusOverdue   = "overdue"
	CalendarStatusPending   = "pending"
	CalendarStatusUpcoming  = "upcoming"
)

// CalendarEntry is one roadmap task projected onto the calendar. The
// due date and status are derived at read time and never stored.
type CalendarEntry struct {
	TaskID          uuid.UUID `json:"task_id"`
	CropPlanID      uuid.UUID `json:"crop_plan_id"`
	CropName        string    `json:"crop_name"`
	TaskTitle       string    `json:"task_title"`
	TaskDescription string    `json:"task_description"`
	DueDate         time.Time `json:"due_date"`
	Status          string    `json:"status"`
}

// CalendarService assembles the farming calendar from active plans.
type CalendarService interface {
	GetCalendar(ctx context.Context, farmerID uuid.UUID) ([]CalendarEntry, error)
}

type calendarService struct {
	db          *gorm.DB
	log         *logger.Logger
	planRepo    repos.CropPlanRepo
	roadmapRepo repos.RoadmapTaskRepo
}

func NewCalendarService(db *gorm.DB, log *logger.Logger, planRepo repos.CropPlanRepo, roadmapRepo repos.RoadmapTaskRepo) CalendarService {
	serviceLog := log.With("service", "CalendarService")
	return &calendarService{db: db, log: serviceLog, planRepo: planRepo, roadmapRepo: roadmapRepo}
}

func (cs *calendarService) GetCalendar(ctx context.Context, farmerID uuid.UUID) ([]CalendarEntry, error) {
	plans, err := cs.planRepo.GetActiveByFarmerID(ctx, nil, farmerID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load active plans: %w", err)
	}
	if len(plans) == 0 {
		return []CalendarEntry{}, nil
	}
	planIDs := make([]uuid.UUID, 0, len(plans))
	for _, plan := range plans {
		planIDs = append(planIDs, plan.ID)
	}
	tasks, err := cs.roadmapRepo.GetByPlanIDs(ctx, nil, planIDs)
	if err != nil {
		return nil, fmt.Errorf("Failed to load roadmap tasks: %w", err)
	}
	return BuildCalendar(plans, tasks, time.Now()), nil
}

// BuildCalendar derives due dates and statuses for every task of the
// given plans. Status precedence: completed, then overdue, then
// pending when due today, then upcoming. Entries come back ascending
// by due date.
func BuildCalendar(plans []*types.CropPlan, tasks []*types.RoadmapTask, now time.Time) []CalendarEntry {
	today := truncateToDay(now)
	plansByID := make(map[uuid.UUID]*types.CropPlan, len(plans))
	for _, plan := range plans {
		plansByID[plan.ID] = plan
	}

	entries := make([]CalendarEntry, 0, len(tasks))
	for _, task := range tasks {
		plan, ok := plansByID[task.CropPlanID]
		if !ok {
			continue
		}
		dueDate := truncateToDay(plan.StartDate).AddDate(0, 0, task.DayNumber)
		entry := CalendarEntry{
			TaskID:          task.ID,
			CropPlanID:      plan.ID,
			TaskTitle:       task.TaskTitle,
			TaskDescription: task.TaskDescription,
			DueDate:         dueDate,
		}
		if plan.Crop != nil {
			entry.CropName = plan.Crop.Name
		}
		switch {
		case task.IsCompleted:
			entry.Status = CalendarStatusCompleted
		case dueDate.Before(today):
			entry.Status = CalendarStatusOverdue
		case dueDate.Equal(today):
			entry.Status = CalendarStatusPending
		default:
			entry.Status = CalendarStatusUpcoming
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DueDate.Before(entries[j].DueDate)
	})
	return entries
}
