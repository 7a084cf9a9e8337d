package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/naveenspark/gitone/internal/cache"
	"github.com/naveenspark/gitone/pkg/client"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the application configuration
type Config struct {
	APIURL   string
	DataDir  string
	CacheTTL time.Duration
	LogLevel string
	Store    string
}

// DBPath is the sqlite file under DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "gitone.db")
}

// LogPath is the log file under DataDir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "gitone.log")
}

// Load loads configuration from environment variables, after merging a
// .env file from the working directory when one exists. Variables already
// set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: reading .env: %w", err)
	}

	cfg := &Config{
		APIURL:   os.Getenv("GITONE_API_URL"),
		DataDir:  os.Getenv("GITONE_DATA_DIR"),
		LogLevel: strings.ToLower(os.Getenv("GITONE_LOG_LEVEL")),
		Store:    strings.ToLower(os.Getenv("GITONE_STORE")),
	}

	// Set defaults
	if cfg.APIURL == "" {
		cfg.APIURL = client.DefaultBaseURL
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".gitone")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Store == "" {
		cfg.Store = StoreSQLite
	}
	cfg.CacheTTL = cache.DefaultTTL
	if raw := os.Getenv("GITONE_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config.Load: GITONE_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	// Validate
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("config.Load: GITONE_CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	switch cfg.Store {
	case StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("config.Load: GITONE_STORE must be %q or %q, got %q", StoreSQLite, StoreMemory, cfg.Store)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("config.Load: GITONE_LOG_LEVEL must be debug, info, warn or error, got %q", cfg.LogLevel)
	}

	return cfg, nil
}
