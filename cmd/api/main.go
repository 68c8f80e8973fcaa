package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"growthplan/internal/config"
	"growthplan/internal/handler"
	"growthplan/internal/httpserver"
	"growthplan/internal/repository"
	"growthplan/internal/service/plangen"
	"growthplan/internal/service/user"
	"growthplan/pkg/db"
	"growthplan/pkg/logger"
	"growthplan/pkg/mq"
	redisclient "growthplan/pkg/redis"
	"growthplan/pkg/util"
)

func main() {
	// Load config
	cfg := config.Load()

	zlog := logger.NewLogger()
	defer zlog.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn, zlog)
	taskRepo := repository.NewTaskRepository(dbConn, zlog)
	profileRepo := repository.NewProfileRepository(dbConn, zlog)
	engagementRepo := repository.NewEngagementRepository(dbConn, zlog)
	feedbackRepo := repository.NewFeedbackRepository(dbConn, zlog)
	notificationRepo := repository.NewNotificationRepository(dbConn, zlog)

	// Generation backend
	timeout := time.Duration(cfg.Generator.TimeoutSec) * time.Second
	var genClient plangen.GenerationClient
	if cfg.Generator.Backend == "gemini" {
		genClient, err = plangen.NewGeminiClient(context.Background(), cfg.Generator.GeminiAPIKey, cfg.Generator.GeminiModel, timeout)
		if err != nil {
			zlog.Fatal("Gemini client initialization failed", zap.Error(err))
		}
	} else {
		genClient = plangen.NewHTTPClient(cfg.Generator.URL, timeout)
	}

	// Init Services
	assembler := plangen.NewContextAssembler(profileRepo, taskRepo, engagementRepo, feedbackRepo, zlog)
	seedLock := util.NewSeedLock(rdb, 10*time.Minute)
	seeder := plangen.NewSeeder(
		taskRepo,
		assembler,
		genClient,
		publisher,
		seedLock,
		zlog,
		cfg.Plan.DesiredDailyTasks,
		time.Duration(cfg.Plan.SeedDelayMs)*time.Millisecond,
	)
	authService := user.NewService(userRepo, cfg.JWT.Secret, zlog)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService, zlog)
	planHandler := handler.NewPlanHandler(seeder, zlog)
	taskHandler := handler.NewTaskHandler(taskRepo, publisher, zlog)
	profileHandler := handler.NewProfileHandler(profileRepo, feedbackRepo, engagementRepo, zlog)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, zlog)

	// Router
	router := httpserver.NewRouter(httpserver.RouterDeps{
		Auth:          authHandler,
		Plan:          planHandler,
		Task:          taskHandler,
		Profile:       profileHandler,
		Notifications: notificationHandler,
		JWTSecret:     cfg.JWT.Secret,
		DB:            dbConn,
		Publisher:     publisher,
		Logger:        zlog,
	})

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		zlog.Fatal("server start failed", zap.Error(err))
	}
}
