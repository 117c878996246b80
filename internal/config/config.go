package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PRIDE"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`
	Verbose  bool   `mapstructure:"verbose"`
	BaseURL  string `mapstructure:"base_url"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	RetryCount         int           `mapstructure:"retry_count"`
	RetryWaitMs        int64         `mapstructure:"retry_wait_ms"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	RetryWait          time.Duration `mapstructure:"-"`

	CacheEnabled         bool          `mapstructure:"cache_enabled"`
	CacheType            string        `mapstructure:"cache_type"`
	BBoltPath            string        `mapstructure:"bbolt_path"`
	RedisAddr            string        `mapstructure:"redis_addr"`
	CacheTTLSeconds      int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds  int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL             time.Duration `mapstructure:"-"`
	CacheCleanupInterval time.Duration `mapstructure:"-"`
}

const defaultBaseURL = "http://www.ebi.ac.uk/pride/ws/archive"

// Load reads configuration from environment variables (PRIDE_*) and configs/.env.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "pride-client")
	v.SetDefault("log_level", "warn")
	v.SetDefault("verbose", false)
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("retry_count", 2)
	v.SetDefault("retry_wait_ms", 500)
	v.SetDefault("cache_enabled", false)
	v.SetDefault("cache_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/pride-cache.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("cache_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates raw values and derives durations.
func (c *Config) finalize() error {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		return fmt.Errorf("invalid base_url (must not be empty)")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("invalid retry_count (must not be negative)")
	}
	if c.RetryWaitMs < 0 {
		return fmt.Errorf("invalid retry_wait_ms (must not be negative)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second
	c.RetryWait = time.Duration(c.RetryWaitMs) * time.Millisecond

	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if c.CacheCleanupSeconds <= 0 {
		return fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	c.CacheTTL = time.Duration(c.CacheTTLSeconds) * time.Second
	c.CacheCleanupInterval = time.Duration(c.CacheCleanupSeconds) * time.Second

	c.CacheType = strings.ToLower(strings.TrimSpace(c.CacheType))
	return nil
}

// StoreType is the storage backend to open; "none" unless caching is enabled.
func (c *Config) StoreType() string {
	if !c.CacheEnabled {
		return "none"
	}
	return c.CacheType
}

// StorePath is the bbolt file or redis address for the selected backend.
func (c *Config) StorePath() string {
	if c.StoreType() == "redis" {
		return c.RedisAddr
	}
	return c.BBoltPath
}
