package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Database
	DBConnectionString string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	DBQueryTimeout     time.Duration
	PoolStatsInterval  string

	// Auth
	JWTSecret string

	// Logging
	LogLevel  string
	LogFormat string

	// Listing
	PageSize int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
// A .env file that exists but cannot be read or parsed is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_CONNECTION_STRING", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_QUERY_TIMEOUT", 5*time.Second)
	v.SetDefault("POOL_STATS_INTERVAL", "@every 1m")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PAGE_SIZE", 12)
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		DBConnectionString: v.GetString("DB_CONNECTION_STRING"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:  v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBQueryTimeout:     v.GetDuration("DB_QUERY_TIMEOUT"),
		PoolStatsInterval:  v.GetString("POOL_STATS_INTERVAL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
		PageSize:           v.GetInt("PAGE_SIZE"),
	}
	return cfg, nil
}

// Validate checks everything the server needs and reports all problems at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBConnectionString == "" {
		errors = append(errors, "missing DB_CONNECTION_STRING")
	}
	if c.JWTSecret == "" {
		errors = append(errors, "no JWT_SECRET provided")
	}

	if c.DBMaxOpenConns < 1 {
		errors = append(errors, fmt.Sprintf("invalid DB_MAX_OPEN_CONNS %d: must be at least 1", c.DBMaxOpenConns))
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		errors = append(errors, fmt.Sprintf("invalid DB_MAX_IDLE_CONNS %d: must be between 0 and DB_MAX_OPEN_CONNS", c.DBMaxIdleConns))
	}
	if c.DBQueryTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid DB_QUERY_TIMEOUT %v: must be positive", c.DBQueryTimeout))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid LOG_LEVEL '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("invalid LOG_FORMAT '%s': must be json or text", c.LogFormat))
	}

	if c.PageSize < 1 || c.PageSize > 100 {
		errors = append(errors, fmt.Sprintf("invalid PAGE_SIZE %d: must be between 1 and 100", c.PageSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
