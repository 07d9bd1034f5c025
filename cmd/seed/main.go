package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"
	"github.com/ShiKuZena/ChatBot-APP/internal/repository"
	"github.com/ShiKuZena/ChatBot-APP/internal/service"
	"github.com/ShiKuZena/ChatBot-APP/pkg/config"
	"github.com/ShiKuZena/ChatBot-APP/pkg/logger"
	"github.com/ShiKuZena/ChatBot-APP/pkg/postgres"

	"go.uber.org/zap"
)

type seedEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	faqRepo := repository.NewFaqRepository(db, appLogger)
	matcher := service.NewMatcher(appLogger)

	appLogger.Info("Starting FAQ seeding...")

	seedFile := filepath.Join("cmd", "seed", "faqs.json")
	entries, err := loadSeedEntries(seedFile)
	if err != nil {
		appLogger.Fatal("Failed to load seed file", zap.String("path", seedFile), zap.Error(err))
	}

	if err := seedFaqs(ctx, entries, faqRepo, matcher, appLogger); err != nil {
		appLogger.Fatal("Failed to seed FAQ table", zap.Error(err))
	}

	appLogger.Info("FAQ seeding completed successfully!")
}

func loadSeedEntries(path string) ([]seedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// seedFaqs inserts every entry that does not already match a stored question,
// using the same matcher the pipeline uses, so reruns and overlapping seed
// files stay idempotent.
func seedFaqs(
	ctx context.Context,
	entries []seedEntry,
	repo *repository.FaqRepository,
	matcher *service.Matcher,
	logger *zap.Logger,
) error {
	snapshot, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}

	inserted := 0
	skipped := 0
	for _, entry := range entries {
		question := strings.TrimSpace(entry.Question)
		answer := strings.TrimSpace(entry.Answer)
		if question == "" || answer == "" {
			logger.Warn("Skipping seed entry with empty question or answer")
			skipped++
			continue
		}

		if existing := matcher.Match(question, snapshot); existing.Found() {
			logger.Info("Seed entry already covered, skipping",
				zap.String("question", question),
				zap.Float64("confidence", existing.Confidence),
			)
			skipped++
			continue
		}

		faq := models.NewFaq(question, answer)
		if err := repo.Create(ctx, faq); err != nil {
			logger.Error("Failed to insert seed entry", zap.String("question", question), zap.Error(err))
			continue
		}

		// Keep the snapshot current so duplicates inside the seed file are
		// caught too.
		snapshot = append(snapshot, *faq)
		inserted++
	}

	logger.Info("Seeding finished", zap.Int("inserted", inserted), zap.Int("skipped", skipped))
	return nil
}
