package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rythumitra/rythumitra-backend/internal/types"
)

func TestBuildCalendarStatuses(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	planID := uuid.New()
	plans := []*types.CropPlan{{
		ID:        planID,
		StartDate: start,
		Crop:      &types.Crop{Name: "Tomato"},
	}}
	tasks := []*types.RoadmapTask{
		{ID: uuid.New(), CropPlanID: planID, DayNumber: 2, TaskTitle: "done early", IsCompleted: true},
		{ID: uuid.New(), CropPlanID: planID, DayNumber: 5, TaskTitle: "missed"},
		{ID: uuid.New(), CropPlanID: planID, DayNumber: 9, TaskTitle: "today"},
		{ID: uuid.New(), CropPlanID: planID, DayNumber: 20, TaskTitle: "later"},
	}

	entries := BuildCalendar(plans, tasks, now)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	byTitle := map[string]CalendarEntry{}
	for _, entry := range entries {
		byTitle[entry.TaskTitle] = entry
	}
	if got := byTitle["done early"].Status; got != CalendarStatusCompleted {
		t.Fatalf("completed task: got status %q", got)
	}
	if got := byTitle["missed"].Status; got != CalendarStatusOverdue {
		t.Fatalf("past-due task: got status %q", got)
	}
	if got := byTitle["today"].Status; got != CalendarStatusPending {
		t.Fatalf("due-today task: got status %q", got)
	}
	if got := byTitle["later"].Status; got != CalendarStatusUpcoming {
		t.Fatalf("future task: got status %q", got)
	}
}

func TestBuildCalendarCompletedWinsOverOverdue(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	planID := uuid.New()
	plans := []*types.CropPlan{{
		ID:        planID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}}
	tasks := []*types.RoadmapTask{
		{ID: uuid.New(), CropPlanID: planID, DayNumber: 1, IsCompleted: true},
	}
	entries := BuildCalendar(plans, tasks, now)
	if entries[0].Status != CalendarStatusCompleted {
		t.Fatalf("completed takes precedence over overdue, got %q", entries[0].Status)
	}
}

func TestBuildCalendarDueDatesAndOrdering(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	planA := uuid.New()
	planB := uuid.New()
	plans := []*types.CropPlan{
		{ID: planA, StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Crop: &types.Crop{Name: "Tomato"}},
		{ID: planB, StartDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), Crop: &types.Crop{Name: "Okra"}},
	}
	tasks := []*types.RoadmapTask{
		{ID: uuid.New(), CropPlanID: planA, DayNumber: 30},
		{ID: uuid.New(), CropPlanID: planB, DayNumber: 3},
		{ID: uuid.New(), CropPlanID: planA, DayNumber: 0},
	}
	entries := BuildCalendar(plans, tasks, now)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !entries[0].DueDate.Equal(want) {
		t.Fatalf("expected first due date %v, got %v", want, entries[0].DueDate)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].DueDate.Before(entries[i-1].DueDate) {
			t.Fatalf("entries not ascending by due date at %d", i)
		}
	}
	if entries[1].CropName != "Okra" {
		t.Fatalf("expected plan B task second, got crop %q", entries[1].CropName)
	}
}

func TestBuildCalendarSkipsTasksWithoutPlan(t *testing.T) {
	now := time.Now()
	tasks := []*types.RoadmapTask{{ID: uuid.New(), CropPlanID: uuid.New(), DayNumber: 1}}
	entries := BuildCalendar(nil, tasks, now)
	if len(entries) != 0 {
		t.Fatalf("orphan tasks should be dropped, got %d entries", len(entries))
	}
}
