package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type RoadmapTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.RoadmapTask) ([]*types.RoadmapTask, error)
	GetByPlanIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.RoadmapTask, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.RoadmapTask, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completedAt time.Time) error
}

type roadmapTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapTaskRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapTaskRepo {
	repoLog := baseLog.With("repo", "RoadmapTaskRepo")
	return &roadmapTaskRepo{db: db, log: repoLog}
}

func (rr *roadmapTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.RoadmapTask) ([]*types.RoadmapTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(tasks) == 0 {
		return []*types.RoadmapTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (rr *roadmapTaskRepo) GetByPlanIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.RoadmapTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RoadmapTask
	if len(planIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("crop_plan_id IN ?", planIDs).
		Order("day_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *roadmapTaskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.RoadmapTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RoadmapTask
	if len(taskIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", taskIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *roadmapTaskRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.RoadmapTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": completedAt,
		}).Error
}
