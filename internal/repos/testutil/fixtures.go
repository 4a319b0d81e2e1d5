package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, email string) *types.User {
	tb.Helper()
	u := &types.User{
		Username: username,
		Email:    email,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedGoal(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, skillName string) *types.Goal {
	tb.Helper()
	g := &types.Goal{
		UserID:    userID,
		SkillName: skillName,
		Timeline:  30,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}

func SeedMilestone(tb testing.TB, ctx context.Context, tx *gorm.DB, goalID uint, order int, isComplete bool) *types.Milestone {
	tb.Helper()
	m := &types.Milestone{
		GoalID:     goalID,
		Title:      "milestone",
		Order:      order,
		IsComplete: isComplete,
	}
	if isComplete {
		now := time.Now().UTC()
		m.CompletedAt = &now
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed milestone: %v", err)
	}
	return m
}

func SeedTask(tb testing.TB, ctx context.Context, tx *gorm.DB, goalID uint, status types.TaskStatus, createdAt time.Time, completedAt *time.Time) *types.Task {
	tb.Helper()
	t := &types.Task{
		GoalID:      goalID,
		Title:       "task",
		Description: "desc",
		Status:      status,
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}
