//go:build !integration

package testutils

import (
	"fmt"

	"entity-tracker-backend/internal/config"
	"entity-tracker-backend/internal/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSharedDB() (*gorm.DB, *config.Config, error) {
	dsn := fmt.Sprintf("file:shared-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Initialize(dsn, &database.Options{LogLevel: logger.Silent})
	if err != nil {
		return nil, nil, err
	}

	cfg := &config.Config{
		DatabaseURL: dsn,
		Port:        "8000",
		LogLevel:    "debug",
		Environment: "test",
	}
	logSharedDB("sqlite", "memory")
	return db, cfg, nil
}

func releaseSharedDB() {}
