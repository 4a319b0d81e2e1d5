package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/jsonarg"
	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/repos"
	"github.com/skillcoach/backend/internal/types"
)

type CreateGoalInput struct {
	UserID    uint
	SkillName string
	Timeline  int
	// Roadmap and CoachNotes accept structured JSON or a JSON string
	// containing serialized JSON.
	Roadmap    json.RawMessage
	CoachNotes json.RawMessage
}

type CreateGoalResult struct {
	GoalID          uint   `json:"goal_id"`
	Confirmation    string `json:"confirmation"`
	SkillName       string `json:"skill_name"`
	Timeline        int    `json:"timeline"`
	MilestonesCount int    `json:"milestones_count"`
}

type UpdateGoalInput struct {
	SkillName  *string
	Timeline   *int
	CoachNotes json.RawMessage
}

type TaskSummary struct {
	TaskID      uint             `json:"task_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      types.TaskStatus `json:"status"`
	CompletedAt *time.Time       `json:"completed_at"`
}

type MilestoneSummary struct {
	MilestoneID uint   `json:"milestone_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsComplete  bool   `json:"is_complete"`
}

// ContextSnapshot is the consolidated read a coaching agent works from:
// recent history, open work in FIFO order, the full roadmap, and notes.
type ContextSnapshot struct {
	GoalID                 uint               `json:"goal_id"`
	SkillName              string             `json:"skill_name"`
	LearningStyle          *string            `json:"learning_style"`
	LastCompletedTasks     []TaskSummary      `json:"last_completed_tasks"`
	CurrentIncompleteTasks []TaskSummary      `json:"current_incomplete_tasks"`
	Roadmap                []MilestoneSummary `json:"roadmap"`
	CoachNotes             datatypes.JSON     `json:"coach_notes"`
}

// recentCompletedLimit caps the history section of the context snapshot.
const recentCompletedLimit = 5

// milestoneInput distinguishes missing keys from present-but-empty ones so
// the default title only applies when the key is absent.
type milestoneInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type GoalService interface {
	CreateGoal(ctx context.Context, input CreateGoalInput) (*CreateGoalResult, error)
	UpdateGoal(ctx context.Context, goalID uint, input UpdateGoalInput) (*types.Goal, error)
	GetContext(ctx context.Context, goalID uint) (*ContextSnapshot, error)
}

type goalService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	goalRepo      repos.GoalRepo
	milestoneRepo repos.MilestoneRepo
	taskRepo      repos.TaskRepo
}

func NewGoalService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, goalRepo repos.GoalRepo, milestoneRepo repos.MilestoneRepo, taskRepo repos.TaskRepo) GoalService {
	serviceLog := log.With("service", "GoalService")
	return &goalService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
		taskRepo:      taskRepo,
	}
}

// defaultMilestoneTitle names a roadmap entry whose title key was omitted.
func defaultMilestoneTitle(index int) string {
	return fmt.Sprintf("Milestone %d", index+1)
}

// CreateGoal creates the goal and one milestone per roadmap entry in a
// single transaction. Both JSON arguments are parsed before anything is
// written, so a parse failure leaves the store untouched.
func (gs *goalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*CreateGoalResult, error) {
	var roadmap []milestoneInput
	if err := jsonarg.Decode(input.Roadmap, &roadmap); err != nil {
		return nil, apierr.Validation("Invalid roadmap JSON format")
	}

	var coachNotes datatypes.JSON
	if len(input.CoachNotes) > 0 {
		normalized, err := jsonarg.Normalize(input.CoachNotes)
		if err != nil {
			return nil, apierr.Validation("Invalid coach_notes JSON format")
		}
		coachNotes = datatypes.JSON(normalized)
	}

	var out *CreateGoalResult
	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := gs.userRepo.GetByID(ctx, tx, input.UserID)
		if err != nil {
			return apierr.Storage(err)
		}
		if user == nil {
			return apierr.NotFound("User not found")
		}

		goal := &types.Goal{
			UserID:     input.UserID,
			SkillName:  input.SkillName,
			Timeline:   input.Timeline,
			CoachNotes: coachNotes,
		}
		if err := gs.goalRepo.Create(ctx, tx, goal); err != nil {
			return apierr.Storage(err)
		}

		milestones := make([]*types.Milestone, 0, len(roadmap))
		for idx, entry := range roadmap {
			title := defaultMilestoneTitle(idx)
			if entry.Title != nil {
				title = *entry.Title
			}
			description := ""
			if entry.Description != nil {
				description = *entry.Description
			}
			milestones = append(milestones, &types.Milestone{
				GoalID:      goal.ID,
				Title:       title,
				Description: description,
				Order:       idx + 1,
			})
		}
		if err := gs.milestoneRepo.CreateBatch(ctx, tx, milestones); err != nil {
			return apierr.Storage(err)
		}

		out = &CreateGoalResult{
			GoalID:          goal.ID,
			Confirmation:    fmt.Sprintf("Goal '%s' created successfully with %d milestones", input.SkillName, len(milestones)),
			SkillName:       goal.SkillName,
			Timeline:        goal.Timeline,
			MilestonesCount: len(milestones),
		}
		return nil
	}); err != nil {
		gs.log.Warn("CreateGoal failed", "user_id", input.UserID, "skill_name", input.SkillName, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}

// UpdateGoal overwrites only the supplied fields; omitted fields are left
// untouched.
func (gs *goalService) UpdateGoal(ctx context.Context, goalID uint, input UpdateGoalInput) (*types.Goal, error) {
	fields := map[string]interface{}{}
	if input.SkillName != nil {
		fields["skill_name"] = *input.SkillName
	}
	if input.Timeline != nil {
		fields["timeline"] = *input.Timeline
	}
	if len(input.CoachNotes) > 0 {
		normalized, err := jsonarg.Normalize(input.CoachNotes)
		if err != nil {
			return nil, apierr.Validation("Invalid coach_notes JSON format")
		}
		fields["coach_notes"] = datatypes.JSON(normalized)
	}

	var out *types.Goal
	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := gs.goalRepo.GetByID(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}
		if goal == nil {
			return apierr.NotFound("Goal not found")
		}

		if err := gs.goalRepo.UpdateFields(ctx, tx, goalID, fields); err != nil {
			return apierr.Storage(err)
		}

		reloaded, err := gs.goalRepo.GetByID(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}
		out = reloaded
		return nil
	}); err != nil {
		gs.log.Warn("UpdateGoal failed", "goal_id", goalID, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}

// GetContext assembles the goal snapshot. It is a pure read: empty task or
// milestone sets come back as empty slices, and an unresolvable owning user
// yields a null learning style rather than an error.
func (gs *goalService) GetContext(ctx context.Context, goalID uint) (*ContextSnapshot, error) {
	var out *ContextSnapshot
	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := gs.goalRepo.GetByID(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}
		if goal == nil {
			return apierr.NotFound("Goal not found")
		}

		lastCompleted, err := gs.taskRepo.ListRecentCompleted(ctx, tx, goalID, recentCompletedLimit)
		if err != nil {
			return apierr.Storage(err)
		}
		currentIncomplete, err := gs.taskRepo.ListActive(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}
		milestones, err := gs.milestoneRepo.ListByGoal(ctx, tx, goalID)
		if err != nil {
			return apierr.Storage(err)
		}

		var learningStyle *string
		user, err := gs.userRepo.GetByID(ctx, tx, goal.UserID)
		if err != nil {
			return apierr.Storage(err)
		}
		if user != nil {
			learningStyle = user.LearningStyle
		}

		out = &ContextSnapshot{
			GoalID:                 goal.ID,
			SkillName:              goal.SkillName,
			LearningStyle:          learningStyle,
			LastCompletedTasks:     summarizeTasks(lastCompleted),
			CurrentIncompleteTasks: summarizeTasks(currentIncomplete),
			Roadmap:                summarizeMilestones(milestones),
			CoachNotes:             goal.CoachNotes,
		}
		return nil
	}); err != nil {
		gs.log.Warn("GetContext failed", "goal_id", goalID, "error", err)
		return nil, apierr.Coerce(err)
	}
	return out, nil
}

func summarizeTasks(tasks []*types.Task) []TaskSummary {
	out := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskSummary{
			TaskID:      t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			CompletedAt: t.CompletedAt,
		})
	}
	return out
}

func summarizeMilestones(milestones []*types.Milestone) []MilestoneSummary {
	out := make([]MilestoneSummary, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, MilestoneSummary{
			MilestoneID: m.ID,
			Title:       m.Title,
			Description: m.Description,
			Order:       m.Order,
			IsComplete:  m.IsComplete,
		})
	}
	return out
}
