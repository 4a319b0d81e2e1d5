package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/types"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.Task) error
	ListRecentCompleted(ctx context.Context, tx *gorm.DB, goalID uint, limit int) ([]*types.Task, error)
	ListActive(ctx context.Context, tx *gorm.DB, goalID uint) ([]*types.Task, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	repoLog := baseLog.With("repo", "TaskRepo")
	return &taskRepo{db: db, log: repoLog}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.Task) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Create(task).Error
}

// ListRecentCompleted returns the goal's completed tasks newest first,
// capped at limit. Equal completed_at timestamps break on id descending so
// the ordering stays deterministic.
func (tr *taskRepo) ListRecentCompleted(ctx context.Context, tx *gorm.DB, goalID uint, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	results := []*types.Task{}
	if err := transaction.WithContext(ctx).
		Where("goal_id = ? AND status = ?", goalID, types.TaskStatusComplete).
		Order("completed_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListActive returns the goal's incomplete and in-progress tasks in FIFO
// order (created_at ascending, id ascending on ties).
func (tr *taskRepo) ListActive(ctx context.Context, tx *gorm.DB, goalID uint) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	results := []*types.Task{}
	if err := transaction.WithContext(ctx).
		Where("goal_id = ? AND status IN ?", goalID, types.ActiveTaskStatuses()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
