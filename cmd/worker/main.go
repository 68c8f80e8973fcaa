package main

import (
	"time"

	"go.uber.org/zap"

	mqcontracts "growthplan/contracts/mq"
	"growthplan/internal/config"
	"growthplan/internal/mqhandler"
	"growthplan/internal/repository"
	"growthplan/pkg/db"
	"growthplan/pkg/logger"
	"growthplan/pkg/mq"
	redisclient "growthplan/pkg/redis"
	"growthplan/pkg/util"
)

func main() {
	// Load config
	cfg := config.Load()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	zlog := logger.NewLogger()
	defer zlog.Sync()

	zlog.Info("Starting worker service...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	zlog.Info("Database connection established")

	// Init Repositories
	notiRepo := repository.NewNotificationRepository(dbConn, zlog)

	// Init Handlers
	weekSeededHandler := mqhandler.NewWeekSeededHandler(notiRepo, deduper, zlog)
	taskCompletedHandler := mqhandler.NewTaskCompletedHandler(notiRepo, deduper, zlog)

	// (1) Consumer for week seeded notifications
	zlog.Info("Initializing week seeded consumer", zap.String("queue", "plan.week.seeded.notify.q"))
	consumerSeeded, err := mq.NewConsumer(cfg.MQ.URL, "plan.week.seeded.notify.q", mqcontracts.RoutingKeyWeekSeeded, zlog)
	if err != nil {
		zlog.Fatal("failed to init week seeded consumer", zap.Error(err))
	}
	consumerSeeded.SetHandler(weekSeededHandler.Handle)
	go func() {
		zlog.Info("Starting week seeded consumer")
		if err := consumerSeeded.StartConsuming(); err != nil {
			zlog.Fatal("week seeded consumer failed", zap.Error(err))
		}
	}()
	defer consumerSeeded.Close()

	// (2) Consumer for task completed notifications
	zlog.Info("Initializing task completed consumer", zap.String("queue", "task.completed.notify.q"))
	consumerCompleted, err := mq.NewConsumer(cfg.MQ.URL, "task.completed.notify.q", mqcontracts.RoutingKeyTaskCompleted, zlog)
	if err != nil {
		zlog.Fatal("failed to init task completed consumer", zap.Error(err))
	}
	consumerCompleted.SetHandler(taskCompletedHandler.Handle)
	go func() {
		zlog.Info("Starting task completed consumer")
		if err := consumerCompleted.StartConsuming(); err != nil {
			zlog.Fatal("task completed consumer failed", zap.Error(err))
		}
	}()
	defer consumerCompleted.Close()

	zlog.Info("All consumers started, worker is ready to process messages")

	// Keep worker running
	select {}
}
