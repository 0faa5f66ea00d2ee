package config

import (
	"fmt"
	"os"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# dex configuration

api:
  base_url: https://pokeapi.co/api/v2   # or set DEX_API_BASE_URL
  timeout: 10s
  requests_per_second: 20               # 0 disables throttling
  burst: 50

catalog:
  limit: 151
  offset: 0
  batch_size: 50

cache:
  backend: sqlite                       # sqlite, memory or none
  ttl: 1h

storage:
  # path: .dex/dex.db (or set DEX_DB_PATH)

qdrant:
  host: localhost
  port: 6334
  collection: dex_stats
  # api_key: your-api-key (or set QDRANT_API_KEY)

server:
  addr: ":8080"
  allowed_origins:
    - http://localhost:3000

log:
  level: info                           # or set DEX_LOG_LEVEL
`

// WriteDefault creates the .dex directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
