package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/services"
)

type MilestoneHandler struct {
	milestoneService services.MilestoneService
}

func NewMilestoneHandler(milestoneService services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

type updateMilestoneRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsComplete  *bool   `json:"is_complete"`
}

func (mh *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	milestoneID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation(err.Error()))
		return
	}

	milestone, err := mh.milestoneService.UpdateMilestone(c.Request.Context(), milestoneID, services.UpdateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		IsComplete:  req.IsComplete,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"milestone_id": milestone.ID,
		"title":        milestone.Title,
		"description":  milestone.Description,
		"order":        milestone.Order,
		"is_complete":  milestone.IsComplete,
		"completed_at": milestone.CompletedAt,
		"message":      "Milestone updated successfully",
	})
}
