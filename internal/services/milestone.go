package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/repos"
	"github.com/skillcoach/backend/internal/types"
)

type UpdateMilestoneInput struct {
	Title       *string
	Description *string
	IsComplete  *bool
}

type MilestoneService interface {
	UpdateMilestone(ctx context.Context, milestoneID uint, input UpdateMilestoneInput) (*types.Milestone, error)
}

type milestoneService struct {
	db            *gorm.DB
	log           *logger.Logger
	milestoneRepo repos.MilestoneRepo
}

func NewMilestoneService(db *gorm.DB, log *logger.Logger, milestoneRepo repos.MilestoneRepo) MilestoneService {
	serviceLog := log.With("service", "MilestoneService")
	return &milestoneService{db: db, log: serviceLog, milestoneRepo: milestoneRepo}
}

// UpdateMilestone overwrites only the supplied fields. Whenever is_complete
// is supplied, completed_at moves with it: set to now on true, cleared on
// false, even if the flag value is unchanged.
func (ms *milestoneService) UpdateMilestone(ctx context.Context, milestoneID uint, input UpdateMilestoneInput) (*types.Milestone, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.IsComplete != nil {
		fields["is_complete"] = *input.IsComplete
		if *input.IsComplete {
			fields["completed_at"] = time.Now().UTC()
		} else {
			fields["completed_at"] = nil
		}
	}

	var out *types.Milestone
	if err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		milestone, err := ms.milestoneRepo.GetByID(ctx, tx, milestoneID)
		if err != nil {
			return apierr.Storage(err)
		}
		if milestone == nil {
			return apierr.NotFound("Milestone not found")
		}

		if err := ms.milestoneRepo.UpdateFields(ctx, tx, milestoneID, fields); err != nil {
			return apierr.Storage(err)
		}

		reloaded, err := ms.milestoneRepo.GetByID(ctx, tx, milestoneID)
		if err != nil {
			return apierr.Storage(err)
		}
		out = reloaded
		return nil
	}); err != nil {
		ms.log.Warn("UpdateMilestone failed", "milestone_id", milestoneID, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}
