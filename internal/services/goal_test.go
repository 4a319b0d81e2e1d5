package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/repos"
	"github.com/skillcoach/backend/internal/repos/testutil"
	"github.com/skillcoach/backend/internal/types"
)

type goalFixture struct {
	db      *gorm.DB
	users   UserService
	goals   GoalService
	mstones repos.MilestoneRepo
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	goalRepo := repos.NewGoalRepo(db, log)
	milestoneRepo := repos.NewMilestoneRepo(db, log)
	taskRepo := repos.NewTaskRepo(db, log)
	return &goalFixture{
		db:      db,
		users:   NewUserService(db, log, userRepo),
		goals:   NewGoalService(db, log, userRepo, goalRepo, milestoneRepo, taskRepo),
		mstones: milestoneRepo,
	}
}

func (f *goalFixture) seedUser(t *testing.T) *types.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), CreateUserInput{Username: "alice", Email: "alice@x.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestCreateGoalWithRoadmap(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	result, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`[{"title":"Chords","description":"Open chords"},{"title":"Songs"}]`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if result.GoalID != 1 {
		t.Fatalf("CreateGoal: expected goal id 1, got %d", result.GoalID)
	}
	if result.MilestonesCount != 2 {
		t.Fatalf("CreateGoal: expected 2 milestones, got %d", result.MilestonesCount)
	}
	if result.Confirmation != "Goal 'Guitar' created successfully with 2 milestones" {
		t.Fatalf("CreateGoal: unexpected confirmation %q", result.Confirmation)
	}

	milestones, err := f.mstones.ListByGoal(ctx, nil, result.GoalID)
	if err != nil {
		t.Fatalf("ListByGoal: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("expected 2 persisted milestones, got %d", len(milestones))
	}
	for i, m := range milestones {
		if m.Order != i+1 {
			t.Fatalf("milestone %d has order %d", i, m.Order)
		}
		if m.IsComplete {
			t.Fatalf("new milestones must start incomplete")
		}
	}
	if milestones[0].Title != "Chords" || milestones[0].Description != "Open chords" {
		t.Fatalf("milestone 1 fields wrong: %+v", milestones[0])
	}
	if milestones[1].Description != "" {
		t.Fatalf("missing description should default to empty, got %q", milestones[1].Description)
	}
}

func TestCreateGoalDefaultsMissingTitles(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	result, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Chess",
		Timeline:  90,
		Roadmap:   json.RawMessage(`[{"description":"openings"},{}]`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	milestones, err := f.mstones.ListByGoal(ctx, nil, result.GoalID)
	if err != nil {
		t.Fatalf("ListByGoal: %v", err)
	}
	if milestones[0].Title != "Milestone 1" || milestones[1].Title != "Milestone 2" {
		t.Fatalf("default titles wrong: %q, %q", milestones[0].Title, milestones[1].Title)
	}
}

func TestCreateGoalStringWrappedArguments(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	result, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:     user.ID,
		SkillName:  "Python",
		Timeline:   30,
		Roadmap:    json.RawMessage(`"[{\"title\":\"Setup\"},{\"title\":\"Basics\"}]"`),
		CoachNotes: json.RawMessage(`"{\"tone\":\"encouraging\"}"`),
	})
	if err != nil {
		t.Fatalf("CreateGoal with string-wrapped args: %v", err)
	}
	if result.MilestonesCount != 2 {
		t.Fatalf("expected 2 milestones, got %d", result.MilestonesCount)
	}

	snapshot, err := f.goals.GetContext(ctx, result.GoalID)
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if string(snapshot.CoachNotes) != `{"tone":"encouraging"}` {
		t.Fatalf("coach notes not stored verbatim: %s", snapshot.CoachNotes)
	}
}

func TestCreateGoalInvalidRoadmapWritesNothing(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	_, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`"not json"`),
	})
	if apierr.KindOf(err) != apierr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Invalid roadmap JSON format" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	var goalCount, milestoneCount int64
	if err := f.db.Model(&types.Goal{}).Count(&goalCount).Error; err != nil {
		t.Fatalf("count goals: %v", err)
	}
	if err := f.db.Model(&types.Milestone{}).Count(&milestoneCount).Error; err != nil {
		t.Fatalf("count milestones: %v", err)
	}
	if goalCount != 0 || milestoneCount != 0 {
		t.Fatalf("parse failure must write nothing, found %d goals %d milestones", goalCount, milestoneCount)
	}
}

func TestCreateGoalInvalidCoachNotes(t *testing.T) {
	f := newGoalFixture(t)
	user := f.seedUser(t)

	_, err := f.goals.CreateGoal(context.Background(), CreateGoalInput{
		UserID:     user.ID,
		SkillName:  "Guitar",
		Timeline:   60,
		Roadmap:    json.RawMessage(`[{"title":"Chords"}]`),
		CoachNotes: json.RawMessage(`"{broken"`),
	})
	if apierr.KindOf(err) != apierr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Invalid coach_notes JSON format" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateGoalUnknownUser(t *testing.T) {
	f := newGoalFixture(t)

	_, err := f.goals.CreateGoal(context.Background(), CreateGoalInput{
		UserID:    99,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`[]`),
	})
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "User not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUpdateGoalPartial(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	created, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:     user.ID,
		SkillName:  "Guitar",
		Timeline:   60,
		Roadmap:    json.RawMessage(`[{"title":"Chords"}]`),
		CoachNotes: json.RawMessage(`{"tone":"encouraging"}`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	timeline := 45
	updated, err := f.goals.UpdateGoal(ctx, created.GoalID, UpdateGoalInput{Timeline: &timeline})
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if updated.Timeline != 45 {
		t.Fatalf("timeline not updated: %d", updated.Timeline)
	}
	if updated.SkillName != "Guitar" {
		t.Fatalf("omitted skill_name must be untouched, got %q", updated.SkillName)
	}
	if string(updated.CoachNotes) != `{"tone":"encouraging"}` {
		t.Fatalf("omitted coach_notes must be untouched, got %s", updated.CoachNotes)
	}

	skill := "Electric Guitar"
	updated, err = f.goals.UpdateGoal(ctx, created.GoalID, UpdateGoalInput{
		SkillName:  &skill,
		CoachNotes: json.RawMessage(`{"tone":"concise"}`),
	})
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if updated.SkillName != "Electric Guitar" || updated.Timeline != 45 {
		t.Fatalf("unexpected projection: %+v", updated)
	}
	if string(updated.CoachNotes) != `{"tone":"concise"}` {
		t.Fatalf("coach_notes overwrite failed: %s", updated.CoachNotes)
	}
}

func TestUpdateGoalErrors(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	_, err := f.goals.UpdateGoal(ctx, 12, UpdateGoalInput{})
	if apierr.KindOf(err) != apierr.KindNotFound || err.Error() != "Goal not found" {
		t.Fatalf("expected Goal not found, got %v", err)
	}

	user := f.seedUser(t)
	created, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	_, err = f.goals.UpdateGoal(ctx, created.GoalID, UpdateGoalInput{CoachNotes: json.RawMessage(`"nope"`)})
	if apierr.KindOf(err) != apierr.KindValidation || err.Error() != "Invalid coach_notes JSON format" {
		t.Fatalf("expected coach_notes validation error, got %v", err)
	}
}

func TestGetContextEmptyGoal(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	created, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	snapshot, err := f.goals.GetContext(ctx, created.GoalID)
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if snapshot.LastCompletedTasks == nil || len(snapshot.LastCompletedTasks) != 0 {
		t.Fatalf("expected empty last_completed_tasks, got %#v", snapshot.LastCompletedTasks)
	}
	if snapshot.CurrentIncompleteTasks == nil || len(snapshot.CurrentIncompleteTasks) != 0 {
		t.Fatalf("expected empty current_incomplete_tasks, got %#v", snapshot.CurrentIncompleteTasks)
	}
	if snapshot.Roadmap == nil || len(snapshot.Roadmap) != 0 {
		t.Fatalf("expected empty roadmap, got %#v", snapshot.Roadmap)
	}
}

func TestGetContextRecentCompletedCap(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	created, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		done := base.Add(time.Duration(i) * time.Minute)
		testutil.SeedTask(t, ctx, f.db, created.GoalID, types.TaskStatusComplete, base, &done)
	}

	snapshot, err := f.goals.GetContext(ctx, created.GoalID)
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if len(snapshot.LastCompletedTasks) != 5 {
		t.Fatalf("expected 5 of 7 completed tasks, got %d", len(snapshot.LastCompletedTasks))
	}
	// Newest first: the two oldest completions fall off.
	if !snapshot.LastCompletedTasks[0].CompletedAt.Equal(base.Add(6 * time.Minute)) {
		t.Fatalf("expected newest completion first, got %v", snapshot.LastCompletedTasks[0].CompletedAt)
	}
	if !snapshot.LastCompletedTasks[4].CompletedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("expected fifth-newest completion last, got %v", snapshot.LastCompletedTasks[4].CompletedAt)
	}
}

func TestGetContextUnresolvableUser(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	user := f.seedUser(t)

	created, err := f.goals.CreateGoal(ctx, CreateGoalInput{
		UserID:    user.ID,
		SkillName: "Guitar",
		Timeline:  60,
		Roadmap:   json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	if err := f.db.Delete(&types.User{}, user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	snapshot, err := f.goals.GetContext(ctx, created.GoalID)
	if err != nil {
		t.Fatalf("GetContext with missing user must not fail: %v", err)
	}
	if snapshot.LearningStyle != nil {
		t.Fatalf("expected nil learning_style, got %v", *snapshot.LearningStyle)
	}
}

func TestGetContextUnknownGoal(t *testing.T) {
	f := newGoalFixture(t)

	_, err := f.goals.GetContext(context.Background(), 7)
	if apierr.KindOf(err) != apierr.KindNotFound || err.Error() != "Goal not found" {
		t.Fatalf("expected Goal not found, got %v", err)
	}
}
