package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultCredentialsSecret = "change-me-credentials-secret"

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	AutoMigrate    bool   `mapstructure:"AUTO_MIGRATE"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Blob storage configuration
	StorageBackend    string `mapstructure:"STORAGE_BACKEND"`
	UploadDir         string `mapstructure:"UPLOAD_DIR"`
	MaxUploadBytes    int64  `mapstructure:"MAX_UPLOAD_BYTES"`
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3Prefix          string `mapstructure:"S3_PREFIX"`

	// Credential sealing
	CredentialsSecret string `mapstructure:"CREDENTIALS_SECRET"`

	// HTTP server timeouts
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.AllowedOrigins = splitOrigins(config.AllowedOrigins)
	config.StorageBackend = strings.ToLower(strings.TrimSpace(config.StorageBackend))

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	v.SetDefault("DATABASE_URL", "sqlite://entity_tracker.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("AUTO_MIGRATE", true)

	// CORS defaults
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	// Storage defaults
	v.SetDefault("STORAGE_BACKEND", "local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", 16<<20)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_PREFIX", "")

	v.SetDefault("CREDENTIALS_SECRET", defaultCredentialsSecret)

	v.SetDefault("READ_TIMEOUT", 30*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 60*time.Second)
}

// splitOrigins accepts both a YAML list and a comma separated env value
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.CredentialsSecret == defaultCredentialsSecret {
			return fmt.Errorf("CREDENTIALS_SECRET must be set in production")
		}
	}

	if config.CredentialsSecret == "" {
		return fmt.Errorf("CREDENTIALS_SECRET must not be empty")
	}

	if config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch config.StorageBackend {
	case "local":
		if config.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the local storage backend")
		}
	case "s3":
		if config.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want local or s3)", config.StorageBackend)
	}

	if config.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
