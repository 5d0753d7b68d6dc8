package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/adapters/connector"
	"github.com/khoahotran/beehype-onboarding/adapters/event"
	httpAdapter "github.com/khoahotran/beehype-onboarding/adapters/http"
	"github.com/khoahotran/beehype-onboarding/adapters/persistence"
	authUC "github.com/khoahotran/beehype-onboarding/internal/application/usecase/auth"
	onboardingUC "github.com/khoahotran/beehype-onboarding/internal/application/usecase/onboarding"
	profileUC "github.com/khoahotran/beehype-onboarding/internal/application/usecase/profile"
	"github.com/khoahotran/beehype-onboarding/internal/config"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/auth"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
	"github.com/khoahotran/beehype-onboarding/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer logger.Sync(appLogger)
	appLogger.Info("Start BeeHype Onboarding API Server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "beehype-onboarding-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", err)
		}
	}()

	// Initialize dependencies
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

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	creatorRepo := persistence.NewPostgresCreatorRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	draftStore := persistence.NewRedisDraftStore(redisClient, cfg.Onboarding.StorageKey, cfg.Onboarding.DraftTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	gmailConnector := connector.NewGmailSimulator(cfg.Onboarding, appLogger)
	navigator := onboarding.NewNavigator(onboarding.NavigatorConfig{
		BasePath:          cfg.Onboarding.BasePath,
		SkipDestination:   cfg.Onboarding.SkipDestination,
		FinishDestination: cfg.Onboarding.FinishDestination,
	})

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(creatorRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo)
	storeUseCase := onboardingUC.NewStoreUseCase(draftStore, appLogger)
	wizardUseCase := onboardingUC.NewWizardUseCase(storeUseCase, navigator, kafkaClient, appLogger)
	gmailUseCase := onboardingUC.NewGmailUseCase(storeUseCase, gmailConnector, kafkaClient, appLogger)

	navigator.Register(onboarding.StepProfile, wizardUseCase.ProfileController())

	// HTTP Handlers
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth:       httpAdapter.NewAuthHandler(loginUseCase, appLogger),
		Onboarding: httpAdapter.NewOnboardingHandler(storeUseCase, wizardUseCase, gmailUseCase, appLogger),
		Profile:    httpAdapter.NewProfileHandler(profileUseCase, appLogger),
	}, jwtSvc, appLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	// Let pending gmail connections record their outcome and queued events
	// reach Kafka before the producer closes.
	gmailUseCase.Wait()
	wizardUseCase.Wait()
	appLogger.Info("Server exited")
}
