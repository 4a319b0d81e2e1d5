package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillcoach/backend/internal/apierr"
	"github.com/skillcoach/backend/internal/services"
	"github.com/skillcoach/backend/internal/types"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Username      string  `json:"username" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	LearningStyle *string `json:"learning_style"`
}

type updateUserRequest struct {
	LearningStyle string `json:"learning_style" binding:"required"`
}

func userProjection(user *types.User) gin.H {
	return gin.H{
		"user_id":        user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"learning_style": user.LearningStyle,
		"created_at":     user.CreatedAt,
	}
}

func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation(err.Error()))
		return
	}

	user, err := uh.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username:      req.Username,
		Email:         req.Email,
		LearningStyle: req.LearningStyle,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userProjection(user))
}

func (uh *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation(err.Error()))
		return
	}

	user, err := uh.userService.UpdateLearningStyle(c.Request.Context(), userID, req.LearningStyle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userProjection(user))
}
