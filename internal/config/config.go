package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB
	TMDBAPIKey  string
	TMDBBaseURL string
	Language    string // Sent as "language" on every TMDB call (default: pt-BR)
	Region      string // Default region for watch providers and theatrical feeds (default: BR)

	// Upstream retry policy
	MaxAttempts    int           // Attempts per logical request (default: 3)
	RequestTimeout time.Duration // Per-attempt timeout (default: 10s)

	// Cache TTLs
	DetailTTL     time.Duration // Single item aggregation (default: 24h)
	TrendingTTL   time.Duration // default: 1h
	RecommendTTL  time.Duration // default: 3h
	NowPlayingTTL time.Duration // default: 6h
	GoatsTTL      time.Duration // default: 12h
	ClassicsTTL   time.Duration // default: 24h

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/cinelog.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_LANGUAGE", "pt-BR")
	viper.SetDefault("TMDB_REGION", "BR")
	viper.SetDefault("TMDB_MAX_ATTEMPTS", 3)
	viper.SetDefault("TMDB_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DETAIL_TTL_HOURS", 24)
	viper.SetDefault("TRENDING_TTL_HOURS", 1)
	viper.SetDefault("RECOMMENDED_TTL_HOURS", 3)
	viper.SetDefault("NOW_PLAYING_TTL_HOURS", 6)
	viper.SetDefault("GOATS_TTL_HOURS", 12)
	viper.SetDefault("CLASSICS_TTL_HOURS", 24)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "cinelog")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// TMDB
		TMDBAPIKey:  viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL: viper.GetString("TMDB_BASE_URL"),
		Language:    viper.GetString("TMDB_LANGUAGE"),
		Region:      viper.GetString("TMDB_REGION"),

		// Retry policy
		MaxAttempts:    viper.GetInt("TMDB_MAX_ATTEMPTS"),
		RequestTimeout: time.Duration(viper.GetInt("TMDB_TIMEOUT_SECONDS")) * time.Second,

		// Cache TTLs
		DetailTTL:     time.Duration(viper.GetInt("DETAIL_TTL_HOURS")) * time.Hour,
		TrendingTTL:   time.Duration(viper.GetInt("TRENDING_TTL_HOURS")) * time.Hour,
		RecommendTTL:  time.Duration(viper.GetInt("RECOMMENDED_TTL_HOURS")) * time.Hour,
		NowPlayingTTL: time.Duration(viper.GetInt("NOW_PLAYING_TTL_HOURS")) * time.Hour,
		GoatsTTL:      time.Duration(viper.GetInt("GOATS_TTL_HOURS")) * time.Hour,
		ClassicsTTL:   time.Duration(viper.GetInt("CLASSICS_TTL_HOURS")) * time.Hour,

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "cinelog.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.MaxAttempts < 1 {
		return nil, fmt.Errorf("TMDB_MAX_ATTEMPTS must be at least 1")
	}

	return config, nil
}
