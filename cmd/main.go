package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skillcoach/backend/internal/db"
	"github.com/skillcoach/backend/internal/handlers"
	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/middleware"
	"github.com/skillcoach/backend/internal/observability"
	"github.com/skillcoach/backend/internal/repos"
	"github.com/skillcoach/backend/internal/server"
	"github.com/skillcoach/backend/internal/services"
	"github.com/skillcoach/backend/internal/utils"
)

func main() {
	// Env file (optional)
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "skillcoach",
		Environment: logMode,
	})

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	goalRepo := repos.NewGoalRepo(theDB, log)
	milestoneRepo := repos.NewMilestoneRepo(theDB, log)
	taskRepo := repos.NewTaskRepo(theDB, log)
	verificationRepo := repos.NewVerificationRepo(theDB, log)

	// Services
	log.Info("Setting up services from main...")
	userService := services.NewUserService(theDB, log, userRepo)
	goalService := services.NewGoalService(theDB, log, userRepo, goalRepo, milestoneRepo, taskRepo)
	milestoneService := services.NewMilestoneService(theDB, log, milestoneRepo)
	taskService := services.NewTaskService(theDB, log, goalRepo, milestoneRepo, taskRepo, verificationRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(userService)
	goalHandler := handlers.NewGoalHandler(goalService)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Middleware
	requestIDMiddleware := middleware.NewRequestIDMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		RequestIDMiddleware: requestIDMiddleware,
		UserHandler:         userHandler,
		GoalHandler:         goalHandler,
		MilestoneHandler:    milestoneHandler,
		TaskHandler:         taskHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("Server shutdown error", "error", err)
	}
	if otelShutdown != nil {
		if err := otelShutdown(ctx); err != nil {
			log.Warn("Otel shutdown error", "error", err)
		}
	}
}
