package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type DailyTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.DailyTask) ([]*types.DailyTask, error)
	GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.DailyTask, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.DailyTask, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completedAt time.Time) error
}

type dailyTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyTaskRepo(db *gorm.DB, baseLog *logger.Logger) DailyTaskRepo {
	repoLog := baseLog.With("repo", "DailyTaskRepo")
	return &dailyTaskRepo{db: db, log: repoLog}
}

func (dr *dailyTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.DailyTask) ([]*types.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(tasks) == 0 {
		return []*types.DailyTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (dr *dailyTaskRepo) GetByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DailyTask
	if err := transaction.WithContext(ctx).
		Where("crop_plan_id = ?", planID).
		Order("task_day ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *dailyTaskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DailyTask
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

func (dr *dailyTaskRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.DailyTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": completedAt,
		}).Error
}
