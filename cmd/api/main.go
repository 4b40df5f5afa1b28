package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nicopeltier/title4pix/internal/ai"
	"github.com/nicopeltier/title4pix/internal/api"
	"github.com/nicopeltier/title4pix/internal/config"
	"github.com/nicopeltier/title4pix/internal/logger"
	"github.com/nicopeltier/title4pix/internal/repository"
	"github.com/nicopeltier/title4pix/internal/service"
	"github.com/nicopeltier/title4pix/internal/storage"
	"github.com/nicopeltier/title4pix/internal/usage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewDefault()
	logger.SetDefault(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	photoRepo := repository.NewPhotoRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	pdfRepo := repository.NewPdfRepository(db)

	// Initialize storage (supports R2, S3, and S3-compatible services)
	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Ensure bucket exists
	ctx := context.Background()
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		appLogger.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	// Initialize the model client
	claude := ai.NewClient(&ai.ClientConfig{
		APIKey:  cfg.Claude.APIKey,
		Model:   cfg.Claude.Model,
		Timeout: cfg.Claude.Timeout,
	})

	// Initialize services
	pricing := usage.Pricing{
		InputPerMillion:  cfg.Claude.PriceInPerMTok,
		OutputPerMillion: cfg.Claude.PriceOutPerMTok,
		FXRate:           cfg.Claude.FXRate,
	}
	photoService := service.NewPhotoService(photoRepo, objectStorage, pricing, appLogger)
	generateService := service.NewGenerateService(photoRepo, settingsRepo, pdfRepo, claude, objectStorage, appLogger)
	themeService := service.NewThemeService(photoRepo, settingsRepo, photoService, claude, appLogger)
	pdfService := service.NewPdfService(pdfRepo, objectStorage, appLogger)
	exportService := service.NewExportService(photoRepo, photoService)

	// Setup router
	router := api.SetupRouter(api.Services{
		Photos:   photoService,
		Generate: generateService,
		Themes:   themeService,
		Pdfs:     pdfService,
		Export:   exportService,
		Settings: settingsRepo,
	}, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.Infof("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited")
}
