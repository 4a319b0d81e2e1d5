package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/services"
)

type GoalHandler struct {
	goalService services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type createGoalRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	SkillName string `json:"skill_name" binding:"required"`
	Timeline  int    `json:"timeline" binding:"required"`
	// Roadmap and coach_notes pass through raw: they may arrive structured
	// or as a JSON string, and the service decides which.
	Roadmap    json.RawMessage `json:"roadmap" binding:"required"`
	CoachNotes json.RawMessage `json:"coach_notes"`
}

type updateGoalRequest struct {
	SkillName  *string         `json:"skill_name"`
	Timeline   *int            `json:"timeline"`
	CoachNotes json.RawMessage `json:"coach_notes"`
}

func (gh *GoalHandler) CreateGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation(err.Error()))
		return
	}

	result, err := gh.goalService.CreateGoal(c.Request.Context(), services.CreateGoalInput{
		UserID:     req.UserID,
		SkillName:  req.SkillName,
		Timeline:   req.Timeline,
		Roadmap:    req.Roadmap,
		CoachNotes: req.CoachNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (gh *GoalHandler) UpdateGoal(c *gin.Context) {
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation(err.Error()))
		return
	}

	goal, err := gh.goalService.UpdateGoal(c.Request.Context(), goalID, services.UpdateGoalInput{
		SkillName:  req.SkillName,
		Timeline:   req.Timeline,
		CoachNotes: req.CoachNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"goal_id":     goal.ID,
		"skill_name":  goal.SkillName,
		"timeline":    goal.Timeline,
		"coach_notes": goal.CoachNotes,
		"message":     "Goal updated successfully",
	})
}

func (gh *GoalHandler) GetContext(c *gin.Context) {
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	snapshot, err := gh.goalService.GetContext(c.Request.Context(), goalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
