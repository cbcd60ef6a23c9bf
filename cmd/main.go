package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"coffee-bot/config"
	telegram "coffee-bot/internal/api"
	"coffee-bot/internal/container"
	"coffee-bot/internal/domain/port"
	"coffee-bot/internal/infrastructure/classifier"
	"coffee-bot/internal/infrastructure/storage"
	"coffee-bot/internal/infrastructure/vision"
	"coffee-bot/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище итогов: Postgres, если задан DATABASE_URL
	var tallies port.TallyRepository = storage.NewMemoryTallyRepository()
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresTallyRepository(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalw("Failed to connect to database", "error", err)
		}
		defer pg.Close()
		tallies = pg
	}

	segmenter, err := vision.NewGoCVSegmenter(cfg.Segmentation, cfg.Labels)
	if err != nil {
		logger.Fatalw("Failed to create segmenter", "error", err)
	}

	appContainer := container.New(container.Deps{
		Users:      storage.NewMemoryUserRepository(),
		Tallies:    tallies,
		Segmenter:  segmenter,
		Classifier: newClassifier(ctx, cfg, logger),
		Labels:     cfg.Labels,
		Workers:    cfg.Workers,
		Logger:     logger,
	})

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, logger.Named("bot"))
	if err != nil {
		logger.Fatalw("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running...")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorw("Bot error", "error", err)
	}
	logger.Info("Bot stopped")
}

// newClassifier возвращает nil, если INFERENCE_URL не задан
func newClassifier(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) port.BeanClassifier {
	if cfg.InferenceURL == "" {
		logger.Info("INFERENCE_URL is not set, beans will be counted without classes")
		return nil
	}

	c := classifier.NewHTTPClassifier(cfg.InferenceURL, cfg.Labels.Len(), cfg.InferenceTimeout)
	if err := c.CheckHealth(ctx); err != nil {
		logger.Warnw("Classifier is not healthy yet", "url", cfg.InferenceURL, "error", err)
	}
	return c
}
