// Package config loads server configuration from flags, environment variables and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Auth      AuthConfig
	Feed      FeedConfig
	Recommend RecommendConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates on-disk state. The SQLite database, search index and
// view cache all live under BasePath.
type DataConfig struct {
	BasePath string
}

// DatabasePath returns the SQLite file path.
func (d DataConfig) DatabasePath() string { return filepath.Join(d.BasePath, "reelhouse.db") }

// SearchPath returns the bleve index directory.
func (d DataConfig) SearchPath() string { return filepath.Join(d.BasePath, "search") }

// CachePath returns the badger view cache directory.
func (d DataConfig) CachePath() string { return filepath.Join(d.BasePath, "cache") }

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        // default: 8080
	ReadTimeout    time.Duration // default: 15s
	WriteTimeout   time.Duration // default: 15s
	IdleTimeout    time.Duration // default: 60s
	AllowedOrigins []string      // CORS origins, default: *
}

// AuthConfig holds token verification configuration.
type AuthConfig struct {
	// AccessTokenKeyHex is a hex-encoded PASETO v4 symmetric key shared with
	// the token issuer. When empty the key file under the data path is used.
	AccessTokenKeyHex   string
	// PASETO v4 symmetric key (32 bytes), resolved at startup.
	AccessTokenKey      []byte
	AccessTokenDuration time.Duration
}

// FeedConfig holds pagination defaults for every listing.
type FeedConfig struct {
	DefaultLimit int // default: 6
	MaxLimit     int // default: 50
}

// RecommendConfig controls the recommendation sampler.
type RecommendConfig struct {
	// MarkSampled adds each sampled video to the actor's watch history.
	MarkSampled bool
}

// CacheConfig controls the channel stats view cache.
type CacheConfig struct {
	Enabled  bool
	StatsTTL time.Duration
}

// RateLimitConfig bounds edge toggles per client.
type RateLimitConfig struct {
	TogglesPerMinute int
	Burst            int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	return load(flag.CommandLine, os.Args[1:])
}

func load(fs *flag.FlagSet, args []string) (*Config, error) {
	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for database, search index and cache")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	allowedOrigins := fs.String("allowed-origins", "", "Comma-separated CORS origins (default: *)")

	accessTokenKey := fs.String("access-token-key", "", "Hex-encoded 32-byte token key (default: generated under data path)")
	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (e.g., 15m)")

	feedDefaultLimit := fs.String("feed-default-limit", "", "Default page size (default: 6)")
	feedMaxLimit := fs.String("feed-max-limit", "", "Maximum page size (default: 50)")
	markSampled := fs.String("recommend-mark-sampled", "", "Add sampled videos to watch history (default: true)")

	cacheEnabled := fs.String("cache-enabled", "", "Enable the channel stats cache (default: true)")
	cacheTTL := fs.String("cache-stats-ttl", "", "Channel stats cache TTL (default: 30s)")

	togglesPerMinute := fs.String("toggle-rate", "", "Edge toggles per minute per client (default: 120)")
	toggleBurst := fs.String("toggle-burst", "", "Edge toggle burst (default: 20)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getConfigValue(*allowedOrigins, "ALLOWED_ORIGINS", "*")),
		},
		Auth: AuthConfig{
			AccessTokenKeyHex: getConfigValue(*accessTokenKey, "ACCESS_TOKEN_KEY", ""),
		},
		Feed: FeedConfig{
			DefaultLimit: getIntConfigValue(*feedDefaultLimit, "FEED_DEFAULT_LIMIT", 6),
			MaxLimit:     getIntConfigValue(*feedMaxLimit, "FEED_MAX_LIMIT", 50),
		},
		Recommend: RecommendConfig{
			MarkSampled: getBoolConfigValue(*markSampled, "RECOMMEND_MARK_SAMPLED", true),
		},
		Cache: CacheConfig{
			Enabled: getBoolConfigValue(*cacheEnabled, "CACHE_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			TogglesPerMinute: getIntConfigValue(*togglesPerMinute, "TOGGLE_RATE", 120),
			Burst:            getIntConfigValue(*toggleBurst, "TOGGLE_BURST", 20),
		},
	}

	durations := []struct {
		flagValue, envKey, def string
		dst                    *time.Duration
	}{
		{*accessTokenDuration, "ACCESS_TOKEN_DURATION", "15m", &cfg.Auth.AccessTokenDuration},
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*cacheTTL, "CACHE_STATS_TTL", "30s", &cfg.Cache.StatsTTL},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		v, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dst = v
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	// 32-byte key, hex encoded.
	if c.Auth.AccessTokenKeyHex != "" && len(c.Auth.AccessTokenKeyHex) != 64 {
		return fmt.Errorf("access token key must be 64 hex characters, got %d", len(c.Auth.AccessTokenKeyHex))
	}

	if c.Feed.DefaultLimit <= 0 {
		return fmt.Errorf("feed default limit must be positive, got %d", c.Feed.DefaultLimit)
	}
	if c.Feed.MaxLimit < c.Feed.DefaultLimit {
		return fmt.Errorf("feed max limit %d is below default limit %d", c.Feed.MaxLimit, c.Feed.DefaultLimit)
	}

	if c.Cache.Enabled && c.Cache.StatsTTL <= 0 {
		return errors.New("cache stats TTL must be positive when the cache is enabled")
	}

	if c.RateLimit.TogglesPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("toggle rate and burst must be positive")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	expanded, err := expandPath(c.Data.BasePath, filepath.Join(homeDir, "Reelhouse", "data"))
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default. Unparseable values fall back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return result
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables win over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
