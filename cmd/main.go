package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/adapters"
	"github.com/ikunnect/agentdesk/adapters/mongo"
	"github.com/ikunnect/agentdesk/adapters/translator"
	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/domain/repositories"
	"github.com/ikunnect/agentdesk/internal/api"
	"github.com/ikunnect/agentdesk/internal/cache"
	"github.com/ikunnect/agentdesk/internal/websocket"
	"github.com/ikunnect/agentdesk/usecase"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Draft storage: MongoDB when configured, in-memory otherwise.
	var drafts repositories.DraftStorage
	if mongoConfig := mongo.NewClientConfigFromEnv(); mongoConfig.URI != "" {
		mongoClient, err := mongo.NewClient(mongoConfig, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			mongoClient.Close(closeCtx)
		}()
		drafts = mongo.NewDraftRepository(mongoClient.Database)
	} else {
		logger.Info("MONGODB_URI not set, drafts are kept in memory")
		drafts = adapters.NewMemoryStorage()
	}

	// Translation backends. The offline backend is always present; network
	// backends register only when their credentials are configured.
	offline := translator.NewOfflineBackend(150*time.Millisecond, logger)
	translation := usecase.NewTranslationService(offline, cache.DefaultCapacity, logger)

	if googleConfig := translator.NewGoogleConfigFromEnv(); googleConfig.APIKey != "" {
		google, err := translator.NewGoogleBackend(googleConfig, logger)
		if err != nil {
			logger.Warn("Skipping Google Translate backend", zap.Error(err))
		} else {
			translation.Register(google)
		}
	}

	if oneMetaConfig := translator.NewOneMetaConfigFromEnv(); oneMetaConfig.APIKey != "" {
		oneMeta, err := translator.NewOneMetaBackend(oneMetaConfig, logger)
		if err != nil {
			logger.Warn("Skipping OneMeta backend", zap.Error(err))
		} else {
			translation.Register(oneMeta)
		}
	}

	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := translator.NewGeminiBackend(logger)
		if err != nil {
			logger.Warn("Skipping Gemini backend", zap.Error(err))
		} else {
			translation.Register(gemini)
		}
	}

	logger.Info("Translation providers registered",
		zap.Strings("providers", translation.Providers()),
		zap.String("default", translation.DefaultProvider()))

	// Usecase services
	draftService := usecase.NewDraftService(drafts, logger)
	timers := usecase.NewResponseTimeTracker()
	status := usecase.NewAgentStatusTracker()
	notifications := usecase.NewNotificationCenter()
	metrics := usecase.NewQueueMetricsSimulator(entities.QueueMetrics{
		InQueue:         5,
		Active:          12,
		Inactive:        3,
		AgentsAvailable: 8,
	})

	// WebSocket hub pushing queue metrics and notifications
	hub := websocket.NewHub(metrics, notifications, logger)
	go hub.Run(ctx)

	// Initialize API routes
	api.InitRoutes(e, api.Services{
		Translator:    translation,
		Drafts:        draftService,
		Timers:        timers,
		Status:        status,
		Notifications: notifications,
		Hub:           hub,
	}, logger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
