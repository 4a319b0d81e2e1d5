package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/types"
)

type MilestoneRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, milestones []*types.Milestone) error
	GetByID(ctx context.Context, tx *gorm.DB, milestoneID uint) (*types.Milestone, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, milestoneID uint, fields map[string]interface{}) error
	ListByGoal(ctx context.Context, tx *gorm.DB, goalID uint) ([]*types.Milestone, error)
	FirstIncomplete(ctx context.Context, tx *gorm.DB, goalID uint) (*types.Milestone, error)
}

type milestoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	repoLog := baseLog.With("repo", "MilestoneRepo")
	return &milestoneRepo{db: db, log: repoLog}
}

func (mr *milestoneRepo) CreateBatch(ctx context.Context, tx *gorm.DB, milestones []*types.Milestone) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(milestones) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&milestones).Error
}

// GetByID returns (nil, nil) when no milestone carries the id.
func (mr *milestoneRepo) GetByID(ctx context.Context, tx *gorm.DB, milestoneID uint) (*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Milestone
	if err := transaction.WithContext(ctx).
		Where("id = ?", milestoneID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// UpdateFields overwrites only the supplied columns. completed_at must be
// present whenever is_complete is, so the pair always moves together.
func (mr *milestoneRepo) UpdateFields(ctx context.Context, tx *gorm.DB, milestoneID uint, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Milestone{}).
		Where("id = ?", milestoneID).
		Updates(fields).Error
}

// ListByGoal returns the goal's full roadmap in roadmap order.
func (mr *milestoneRepo) ListByGoal(ctx context.Context, tx *gorm.DB, goalID uint) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	results := []*types.Milestone{}
	if err := transaction.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order(`"order" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FirstIncomplete returns the goal's incomplete milestone with the smallest
// order, or (nil, nil) when every milestone is complete.
func (mr *milestoneRepo) FirstIncomplete(ctx context.Context, tx *gorm.DB, goalID uint) (*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Milestone
	if err := transaction.WithContext(ctx).
		Where("goal_id = ? AND is_complete = ?", goalID, false).
		Order(`"order" ASC`).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
