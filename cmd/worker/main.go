package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/adapters/persistence"
	profileUC "github.com/khoahotran/beehype-onboarding/internal/application/usecase/profile"
	"github.com/khoahotran/beehype-onboarding/internal/config"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
	"github.com/khoahotran/beehype-onboarding/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer logger.Sync(appLogger)
	appLogger.Info("Starting BeeHype Onboarding Worker...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "beehype-onboarding-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tp.Shutdown(context.Background())

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	draftStore := persistence.NewRedisDraftStore(redisClient, cfg.Onboarding.StorageKey, cfg.Onboarding.DraftTTL, appLogger)

	// Worker Use Case
	processEventUC := profileUC.NewProcessOnboardingEventUseCase(draftStore, profileRepo, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicOnboardingEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicOnboardingEvents), zap.String("group_id", cfg.Kafka.GroupID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consume(ctx, consumer, processEventUC, appLogger); err != nil {
		appLogger.Error("Kafka reader closed", err)
		return
	}
	appLogger.Info("Worker stopped")
}
