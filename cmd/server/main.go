package main

import (
	"context"
	"fmt"
	"log"

	"snaptex/internal/capture"
	"snaptex/internal/clipboard"
	"snaptex/internal/config"
	"snaptex/internal/handler"
	"snaptex/internal/port"
	"snaptex/internal/recognizer"
	"snaptex/internal/recognizer/gemini"
	"snaptex/internal/repository/sqlite"
	"snaptex/internal/router"
	"snaptex/internal/service"
	"snaptex/internal/storage/localdir"
	s3storage "snaptex/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlite.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	historyRepo := sqlite.NewHistoryRepo(db)

	// Initialize capture image storage
	var store port.ObjectStorage
	switch cfg.Storage.Backend {
	case "local":
		store, err = localdir.NewLocalStore(cfg.Storage.LocalDir)
	case "s3":
		store, err = s3storage.NewS3Client(&cfg.Storage)
	default:
		return fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Backend, err)
	}

	// Initialize the recognizer
	recognizer.RegisterProvider("gemini", func(rc *config.RecognizerConfig) (port.Recognizer, error) {
		return gemini.NewClient(rc), nil
	})
	rec, err := recognizer.New(&cfg.Recognizer)
	if err != nil {
		return fmt.Errorf("failed to initialize recognizer: %w", err)
	}

	// Initialize the clipboard host and bridge
	host := clipboard.NewHost(cfg.Clipboard)
	defer func() { _ = host.Close(context.Background()) }()
	bridge := clipboard.NewBridge(host)

	// Initialize capture components
	cropper := capture.NewCropper()
	source := capture.NewRodSource(cfg.Browser)
	defer func() { _ = source.Close() }()

	// Initialize services
	pipelineSvc := service.NewPipelineService(cropper, source, rec, bridge, historyRepo, store, cfg)
	historySvc := service.NewHistoryService(historyRepo, store, cfg.Storage.Bucket)

	// Initialize handlers
	captureH := handler.NewCaptureHandler(pipelineSvc)
	historyH := handler.NewHistoryHandler(historySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, captureH, historyH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
