// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for dex configuration.
	DefaultConfigDir = ".dex"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default SQLite database file name.
	DefaultDBFile = "dex.db"
	// DefaultEnvFile is the optional dotenv file read before env overrides.
	DefaultEnvFile = ".env"
)

// Cache backends.
const (
	CacheSQLite = "sqlite"
	CacheMemory = "memory"
	CacheNone   = "none"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after load).
type Config struct {
	API     APIConfig     `yaml:"api,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	Qdrant  QdrantConfig  `yaml:"qdrant,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// APIConfig holds configuration for the remote catalog provider.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	RequestsPerSecond float64       `yaml:"requests_per_second,omitempty"` // 0 disables throttling
	Burst             int           `yaml:"burst,omitempty"`
}

// CatalogConfig holds the index window and aggregation batch size.
type CatalogConfig struct {
	Limit     int `yaml:"limit,omitempty"`
	Offset    int `yaml:"offset,omitempty"`
	BatchSize int `yaml:"batch_size,omitempty"`
}

// CacheConfig holds configuration for the response cache.
type CacheConfig struct {
	Backend string        `yaml:"backend,omitempty"`
	TTL     time.Duration `yaml:"ttl,omitempty"`
}

// StorageConfig holds configuration for the SQLite database.
type StorageConfig struct {
	// Path is the database file. Relative paths are resolved against the base path.
	Path string `yaml:"path,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://pokeapi.co/api/v2",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             50,
		},
		Catalog: CatalogConfig{
			Limit:     151,
			Offset:    0,
			BatchSize: 50,
		},
		Cache: CacheConfig{
			Backend: CacheSQLite,
			TTL:     time.Hour,
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "dex_stats",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the .dex directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(basePath, DefaultEnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(ConfigDir(basePath), DefaultDBFile)
	} else if !filepath.IsAbs(cfg.Storage.Path) {
		cfg.Storage.Path = filepath.Join(basePath, cfg.Storage.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DEX_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("DEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DEX_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" {
		if c.Qdrant.APIKey == "" {
			c.Qdrant.APIKey = key
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheSQLite, CacheMemory, CacheNone:
	default:
		return fmt.Errorf("invalid cache backend %q (valid: sqlite, memory, none)", c.Cache.Backend)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.Catalog.Limit <= 0 {
		return fmt.Errorf("catalog.limit must be positive, got %d", c.Catalog.Limit)
	}
	if c.Catalog.Offset < 0 {
		return fmt.Errorf("catalog.offset must not be negative, got %d", c.Catalog.Offset)
	}
	if c.Catalog.BatchSize <= 0 {
		return fmt.Errorf("catalog.batch_size must be positive, got %d", c.Catalog.BatchSize)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second must not be negative")
	}
	return nil
}

// ConfigDir returns the path to the .dex config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a dex config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeCollectionName converts a name to a valid Qdrant collection name.
func SanitizeCollectionName(name string) string {
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "dex_stats"
	}

	return name
}
