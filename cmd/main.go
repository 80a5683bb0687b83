package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"plant-bot/config"
	telegram "plant-bot/internal/api"
	"plant-bot/internal/api/web"
	"plant-bot/internal/container"
	"plant-bot/internal/infrastructure/i18n"
	"plant-bot/internal/infrastructure/knowledge"
	"plant-bot/internal/infrastructure/storage"
	"plant-bot/internal/infrastructure/vision"
	"plant-bot/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogFile, cfg.Production)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Строки интерфейса и справочник видов загружаются один раз
	translator, err := i18n.NewDefault(cfg.DefaultLocale)
	if err != nil {
		zlog.Fatal("failed to load locale table", zap.Error(err))
	}
	catalog, err := knowledge.NewDefault()
	if err != nil {
		zlog.Fatal("failed to load species catalog", zap.Error(err))
	}

	// Без модели приложение не запускается
	detectorCfg := vision.DefaultDetectorConfig()
	detectorCfg.ModelPath = cfg.ModelPath
	detectorCfg.LabelsPath = cfg.LabelsPath
	detectorCfg.InputSize = cfg.ModelInputSize
	detectorCfg.Confidence = cfg.ModelConfidence
	detectorCfg.IoU = cfg.ModelIoU

	detector, err := vision.NewYOLODetector(detectorCfg)
	if err != nil {
		zlog.Fatal("failed to load detection model", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	defer detector.Close()

	appContainer := container.New(container.Deps{
		Sessions:   storage.NewMemorySessionRepository(cfg.SessionTTL, cfg.DefaultLocale),
		Decoder:    vision.NewDecoder(cfg.ThumbnailMaxSide, cfg.MaxImagePixels),
		Detector:   detector,
		Catalog:    catalog,
		Translator: translator,
		Policy:     cfg.DedupPolicy,
		Logger:     zlog,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, cfg.MaxUploadBytes, zlog.Named("telegram"))
		if err != nil {
			zlog.Fatal("failed to create bot", zap.Error(err))
		}
		g.Go(func() error {
			zlog.Info("bot is running")
			return bot.Run(ctx)
		})
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, cfg.MaxUploadBytes, appContainer, translator, zlog.Named("http"))
		g.Go(func() error {
			return srv.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		zlog.Error("stopped with error", zap.Error(err))
		return
	}
	zlog.Info("stopped")
}
