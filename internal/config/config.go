package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvHost      = "TRACKER_HOST"
	EnvPort      = "TRACKER_PORT"
	EnvDBPath    = "TRACKER_DB_PATH"
	EnvTimezone  = "TRACKER_TIMEZONE"
	EnvRedisAddr = "TRACKER_REDIS_ADDR"
)

// Config represents the application configuration.
type Config struct {
	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// SQLite storage configuration
	Database DatabaseConfig `toml:"database"`

	// Match recording configuration
	Tracker TrackerConfig `toml:"tracker"`

	// Stats cache configuration
	Cache CacheConfig `toml:"cache"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host      string  `toml:"host"`       // Bind address
	Port      int     `toml:"port"`       // Listen port
	RateLimit float64 `toml:"rate_limit"` // Requests per second per client (0 = unlimited)
	RateBurst int     `toml:"rate_burst"` // Burst size for the rate limiter
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Database file path
	JournalMode string `toml:"journal_mode"` // SQLite journal mode
	BusyTimeout string `toml:"busy_timeout"` // Lock wait (e.g., "5s")
}

// TrackerConfig contains match recording settings.
type TrackerConfig struct {
	Timezone string `toml:"timezone"` // IANA zone match dates are recorded in
}

// CacheConfig contains stats cache settings.
type CacheConfig struct {
	RedisAddr     string `toml:"redis_addr"`     // Redis address; empty disables caching
	RedisPassword string `toml:"redis_password"` // Redis password
	RedisDB       int    `toml:"redis_db"`       // Redis logical database
	TTL           string `toml:"ttl"`            // Entry lifetime (e.g., "10m")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      5000,
			RateLimit: 20,
			RateBurst: 40,
		},
		Database: DatabaseConfig{
			Path:        "pokepoke.db",
			JournalMode: "WAL",
			BusyTimeout: "5s",
		},
		Tracker: TrackerConfig{
			Timezone: "Asia/Tokyo",
		},
		Cache: CacheConfig{
			RedisAddr: "",
			TTL:       "10m",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// or an empty path yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from TRACKER_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvHost); ok {
		c.Server.Host = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v, ok := os.LookupEnv(EnvDBPath); ok {
		c.Database.Path = v
	}
	if v, ok := os.LookupEnv(EnvTimezone); ok {
		c.Tracker.Timezone = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		c.Cache.RedisAddr = v
	}
	return nil
}

// Save writes the configuration to path as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Server.Port)
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative: %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1 when rate limiting, got %d", c.Server.RateBurst)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if _, err := c.BusyTimeout(); err != nil {
		return fmt.Errorf("invalid busy timeout %q: %w", c.Database.BusyTimeout, err)
	}

	if _, err := c.CacheTTL(); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Cache.TTL, err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Tracker.Timezone, err)
	}

	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Location loads the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Tracker.Timezone == "" {
		return nil, fmt.Errorf("timezone cannot be empty")
	}
	return time.LoadLocation(c.Tracker.Timezone)
}

// BusyTimeout returns the SQLite busy timeout as a duration.
func (c *Config) BusyTimeout() (time.Duration, error) {
	return parseDuration(c.Database.BusyTimeout)
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() (time.Duration, error) {
	return parseDuration(c.Cache.TTL)
}

// parseDuration treats an empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration cannot be negative")
	}
	return d, nil
}
