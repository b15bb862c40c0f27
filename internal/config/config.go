// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ConfigDir   string
	DBPath      string
	HTTPCache   string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
	SecretKey   []byte // 32-byte AES-256 key; nil when at-rest encryption is disabled.
	LogLevel    string
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: JIRABRANCH_CONFIG_DIR
// (<user config dir>/jirabranch), JIRABRANCH_DB_PATH (<config dir>/jirabranch.db),
// JIRABRANCH_CACHE_TTL (6h), JIRABRANCH_HTTP_TIMEOUT (3s), JIRABRANCH_LOG_LEVEL (warn).
// JIRABRANCH_SECRET_KEY, when set, must be 64 hex characters (a 32-byte AES-256 key)
// and enables at-rest encryption of stored API keys.
func Load() (*Config, error) {
	configDir := os.Getenv("JIRABRANCH_CONFIG_DIR")
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		configDir = filepath.Join(base, "jirabranch")
	}

	dbPath := filepath.Join(configDir, "jirabranch.db")
	if v, ok := os.LookupEnv("JIRABRANCH_DB_PATH"); ok {
		dbPath = v
	}

	cacheTTL := 6 * time.Hour
	if v, ok := os.LookupEnv("JIRABRANCH_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("JIRABRANCH_CACHE_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("JIRABRANCH_CACHE_TTL must be positive, got %q", v)
		}
		cacheTTL = parsed
	}

	// Short timeout so a slow network never stalls the shell prompt.
	httpTimeout := 3 * time.Second
	if v, ok := os.LookupEnv("JIRABRANCH_HTTP_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("JIRABRANCH_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("JIRABRANCH_HTTP_TIMEOUT must be positive, got %q", v)
		}
		httpTimeout = parsed
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("JIRABRANCH_SECRET_KEY"); ok && v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("JIRABRANCH_SECRET_KEY is not valid hex: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("JIRABRANCH_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	logLevel := "warn"
	if v, ok := os.LookupEnv("JIRABRANCH_LOG_LEVEL"); ok && v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			logLevel = v
		default:
			return nil, fmt.Errorf("JIRABRANCH_LOG_LEVEL must be one of debug, info, warn, error; got %q", v)
		}
	}

	return &Config{
		ConfigDir:   configDir,
		DBPath:      dbPath,
		HTTPCache:   filepath.Join(configDir, "httpcache"),
		CacheTTL:    cacheTTL,
		HTTPTimeout: httpTimeout,
		SecretKey:   secretKey,
		LogLevel:    logLevel,
	}, nil
}
