package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/skillcoach/backend/internal/handlers"
	"github.com/skillcoach/backend/internal/middleware"
)

type RouterConfig struct {
	RequestIDMiddleware *middleware.RequestIDMiddleware
	UserHandler         *handlers.UserHandler
	GoalHandler         *handlers.GoalHandler
	MilestoneHandler    *handlers.MilestoneHandler
	TaskHandler         *handlers.TaskHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.Use(otelgin.Middleware("skillcoach"))
	if cfg.RequestIDMiddleware != nil {
		router.Use(cfg.RequestIDMiddleware.Attach())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		// User
		api.POST("/users", cfg.UserHandler.CreateUser)
		api.PATCH("/users/:id", cfg.UserHandler.UpdateUser)
		// Goal
		api.POST("/goals", cfg.GoalHandler.CreateGoal)
		api.PATCH("/goals/:id", cfg.GoalHandler.UpdateGoal)
		api.GET("/goals/:id/context", cfg.GoalHandler.GetContext)
		// Milestone
		api.PATCH("/milestones/:id", cfg.MilestoneHandler.UpdateMilestone)
		// Task
		api.POST("/goals/:id/tasks", cfg.TaskHandler.CreateTask)
	}

	return router
}
