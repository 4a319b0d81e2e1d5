package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/types"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) error
	GetByID(ctx context.Context, tx *gorm.DB, goalID uint) (*types.Goal, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, goalID uint, fields map[string]interface{}) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	repoLog := baseLog.With("repo", "GoalRepo")
	return &goalRepo{db: db, log: repoLog}
}

func (gr *goalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).Create(goal).Error
}

// GetByID returns (nil, nil) when no goal carries the id.
func (gr *goalRepo) GetByID(ctx context.Context, tx *gorm.DB, goalID uint) (*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Where("id = ?", goalID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// UpdateFields overwrites only the supplied columns.
func (gr *goalRepo) UpdateFields(ctx context.Context, tx *gorm.DB, goalID uint, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Goal{}).
		Where("id = ?", goalID).
		Updates(fields).Error
}
