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

	"entity-tracker-backend/internal/api/routes"
	"entity-tracker-backend/internal/config"
	"entity-tracker-backend/internal/credentials"
	"entity-tracker-backend/internal/database"
	"entity-tracker-backend/internal/logger"
	"entity-tracker-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "entity-tracker-backend/docs" // This is needed for swag
)

//	@title			Entity Tracker Backend API
//	@version		1.0
//	@description	Backend API for tracking legal entities with their accounts, tasks and documents.

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8000
//	@BasePath	/api

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel, os.Stdout)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, &database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		SkipMigrate:  !cfg.AutoMigrate,
	})
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	blobs, err := newBlobStore(context.Background(), cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize blob storage:", err)
	}

	sealer, err := credentials.NewSealer(cfg.CredentialsSecret)
	if err != nil {
		logrus.Fatal("Failed to initialize credential sealer:", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := routes.SetupRoutes(db, cfg, blobs, sealer)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"storage": cfg.StorageBackend,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Prefix:          cfg.S3Prefix,
			MaxBytes:        cfg.MaxUploadBytes,
		})
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes)
}
