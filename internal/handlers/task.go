package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	TaskTitle       string `json:"task_title" binding:"required"`
	TaskDescription string `json:"task_description" binding:"required"`
}

func (th *TaskHandler) CreateTask(c *gin.Context) {
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation(err.Error()))
		return
	}

	result, err := th.taskService.CreateTask(c.Request.Context(), goalID, req.TaskTitle, req.TaskDescription)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
