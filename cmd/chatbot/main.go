package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ShiKuZena/ChatBot-APP/internal/api"
	"github.com/ShiKuZena/ChatBot-APP/internal/api/handlers"
	"github.com/ShiKuZena/ChatBot-APP/internal/repository"
	"github.com/ShiKuZena/ChatBot-APP/internal/service"
	"github.com/ShiKuZena/ChatBot-APP/pkg/config"
	"github.com/ShiKuZena/ChatBot-APP/pkg/logger"
	"github.com/ShiKuZena/ChatBot-APP/pkg/postgres"

	"go.uber.org/zap"
)

// @title Library ChatBot API
// @version 1.0
// @description Self-learning FAQ assistant for the library, with tiered answer resolution

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting library chatbot service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	faqRepo := repository.NewFaqRepository(db, appLogger)
	historyRepo := repository.NewHistoryRepository(db, appLogger)

	// Initialize the resolution pipeline
	matcher := service.NewMatcher(appLogger)
	fetcher := service.NewContextFetcher(&cfg.Context, appLogger)
	llmService := service.NewLLMService(&cfg.OpenRouter, appLogger)
	learner := service.NewFaqLearner(faqRepo, matcher, llmService, &cfg.Learning, appLogger)
	resolver := service.NewResolver(faqRepo, historyRepo, matcher, fetcher, llmService, learner, appLogger)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(resolver, appLogger)
	adminHandler := handlers.NewAdminHandler(faqRepo, historyRepo, matcher, appLogger)

	// Setup router
	app := api.SetupRouter(&cfg.Server, chatHandler, adminHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
