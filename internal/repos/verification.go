package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/types"
)

type VerificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, verification *types.Verification) error
	GetByTaskID(ctx context.Context, tx *gorm.DB, taskID uint) (*types.Verification, error)
}

type verificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerificationRepo(db *gorm.DB, baseLog *logger.Logger) VerificationRepo {
	repoLog := baseLog.With("repo", "VerificationRepo")
	return &verificationRepo{db: db, log: repoLog}
}

func (vr *verificationRepo) Create(ctx context.Context, tx *gorm.DB, verification *types.Verification) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).Create(verification).Error
}

// GetByTaskID returns (nil, nil) when the task has no verification.
func (vr *verificationRepo) GetByTaskID(ctx context.Context, tx *gorm.DB, taskID uint) (*types.Verification, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Verification
	if err := transaction.WithContext(ctx).
		Where("task_id = ?", taskID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
