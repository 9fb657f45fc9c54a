package config

import (
	"os"
	"strconv"
	"time"

	"douyinsight/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	AI       AIConfig
	Predict  PredictConfig
}

// DatabaseConfig holds storage settings. When URL is empty the embedded
// sqlite store at SQLitePath is used instead of postgres.
type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	URL        string
	SQLitePath string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds the ingestion source paths
type DataConfig struct {
	VideoFile   string
	CommentFile string
}

// AIConfig holds settings for the OpenAI-compatible analysis collaborator.
// APIKey may be empty; the AI endpoints then report the collaborator as
// unconfigured instead of failing at startup.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// PredictConfig holds like-count predictor settings
type PredictConfig struct {
	MinRecords int
	TestRatio  float64
	Seed       int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:        os.Getenv("DATABASE_URL"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "douyinsight.db"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			VideoFile:   getEnvOrDefault("VIDEO_DATA_FILE", "data/video_data.csv"),
			CommentFile: getEnvOrDefault("COMMENT_DATA_FILE", "data/comment.csv"),
		},
		AI: AIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 2000),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.7),
			Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Predict: PredictConfig{
			MinRecords: getEnvIntOrDefault("PREDICT_MIN_RECORDS", 10),
			TestRatio:  getEnvFloatOrDefault("PREDICT_TEST_RATIO", 0.2),
			Seed:       int64(getEnvIntOrDefault("PREDICT_SEED", 42)),
		},
	}

	if cfg.Database.URL != "" {
		cfg.Database.Driver = "postgres"
	} else {
		cfg.Database.Driver = "sqlite"
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Database.Driver == "sqlite" && cfg.Database.SQLitePath == "" {
		return errors.ConfigInvalid("SQLITE_PATH is required when DATABASE_URL is unset")
	}
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if cfg.Predict.TestRatio <= 0 || cfg.Predict.TestRatio >= 1 {
		return errors.ConfigInvalid("PREDICT_TEST_RATIO must be in (0, 1)")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
