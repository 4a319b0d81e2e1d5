package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/repos"
	"github.com/skillcoach/backend/internal/types"
)

// VerificationContent is the deterministic text-verification payload
// generated for every new task. No generative call is involved.
type VerificationContent struct {
	Prompt     string `json:"prompt"`
	Guidelines string `json:"guidelines"`
}

type CreateTaskResult struct {
	TaskID              uint                   `json:"task_id"`
	TaskTitle           string                 `json:"task_title"`
	TaskDescription     string                 `json:"task_description"`
	VerificationType    types.VerificationType `json:"verification_type"`
	VerificationContent VerificationContent    `json:"verification_content"`
	// MilestoneID is null when every milestone of the goal was already
	// complete at creation time.
	MilestoneID *uint `json:"milestone_id"`
}

type TaskService interface {
	CreateTask(ctx context.Context, goalID uint, taskTitle, taskDescription string) (*CreateTaskResult, error)
}

type taskService struct {
	db               *gorm.DB
	log              *logger.Logger
	goalRepo         repos.GoalRepo
	milestoneRepo    repos.MilestoneRepo
	taskRepo         repos.TaskRepo
	verificationRepo repos.VerificationRepo
}

func NewTaskService(db *gorm.DB, log *logger.Logger, goalRepo repos.GoalRepo, milestoneRepo repos.MilestoneRepo, taskRepo repos.TaskRepo, verificationRepo repos.VerificationRepo) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{
		db:               db,
		log:              serviceLog,
		goalRepo:         goalRepo,
		milestoneRepo:    milestoneRepo,
		taskRepo:         taskRepo,
		verificationRepo: verificationRepo,
	}
}

// buildVerification renders the fixed verification template for a task.
func buildVerification(taskTitle, taskDescription string) (VerificationContent, map[string]string) {
	content := VerificationContent{
		Prompt:     fmt.Sprintf("Please complete the following task: %s", taskTitle),
		Guidelines: taskDescription,
	}
	requirements := map[string]string{
		"completion_criteria": "Task should be completed according to the description",
	}
	return content, requirements
}

// CreateTask creates an incomplete task under the goal's earliest incomplete
// milestone (none leaves milestone_id null) and writes its verification in
// the same transaction. A milestone completing concurrently may still win
// the assignment; the store's isolation is the only serialization.
func (ts *taskService) CreateTask(ctx context.Context, goalID uint, taskTitle, taskDescription string) (*CreateTaskResult, error) {
	var out *CreateTaskResult
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := ts.goalRepo.GetByID(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}
		if goal == nil {
			return apierr.NotFound("Goal not found")
		}

		currentMilestone, err := ts.milestoneRepo.FirstIncomplete(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}
		var milestoneID *uint
		if currentMilestone != nil {
			milestoneID = &currentMilestone.ID
		}

		task := &types.Task{
			GoalID:      goalID,
			MilestoneID: milestoneID,
			Title:       taskTitle,
			Description: taskDescription,
			Status:      types.TaskStatusIncomplete,
		}
		if err := ts.taskRepo.Create(ctx, tx, task); err != nil {
			return apierr.Storage(err)
		}

		content, requirements := buildVerification(taskTitle, taskDescription)
		contentJSON, err := json.Marshal(content)
		if err != nil {
			return apierr.Storage(err)
		}
		requirementsJSON, err := json.Marshal(requirements)
		if err != nil {
			return apierr.Storage(err)
		}
		verification := &types.Verification{
			TaskID:           task.ID,
			VerificationType: types.VerificationTypeText,
			Content:          datatypes.JSON(contentJSON),
			Requirements:     datatypes.JSON(requirementsJSON),
		}
		if err := ts.verificationRepo.Create(ctx, tx, verification); err != nil {
			return apierr.Storage(err)
		}

		out = &CreateTaskResult{
			TaskID:              task.ID,
			TaskTitle:           task.Title,
			TaskDescription:     task.Description,
			VerificationType:    verification.VerificationType,
			VerificationContent: content,
			MilestoneID:         milestoneID,
		}
		return nil
	}); err != nil {
		ts.log.Warn("CreateTask failed", "goal_id", goalID, "task_title", taskTitle, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}
