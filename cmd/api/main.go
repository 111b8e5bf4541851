package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-application-tracker/config"
	_ "go-application-tracker/docs" // Important for Swagger
	v1 "go-application-tracker/internal/delivery/http/v1"
	"go-application-tracker/internal/repository/postgres"
	"go-application-tracker/internal/scheduler"
	"go-application-tracker/internal/usecase"
	"go-application-tracker/pkg/database"
	"go-application-tracker/pkg/logger"
	"go-application-tracker/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Application Tracker API
// @version         1.0
// @description     Job application tracking backend with automated status progression.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting application tracker", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRoleRepo := postgres.NewJobRoleRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	activityRepo := postgres.NewActivityLogRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	jobRoleUC := usecase.NewJobRoleUsecase(jobRoleRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRoleRepo, activityRepo, validate, cfg.StrictTransitions)
	botUC := usecase.NewBotUsecase(applicationRepo, activityRepo, cfg.ProgressionProbability, nil)

	// 7. Setup Scheduler
	sched := scheduler.New(botUC, authUC, time.Duration(cfg.SchedulerIntervalMinutes)*time.Minute)
	if cfg.SchedulerEnabled {
		sched.Start()
		defer sched.Stop()
	} else {
		logger.Log.Info("Automation scheduler disabled by configuration")
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ApplicationUC: applicationUC,
		JobRoleUC:     jobRoleUC,
		BotUC:         botUC,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
