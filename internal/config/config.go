// Package config provides application configuration management using Viper.
// It supports loading from environment variables, config files, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Chat      ChatConfig
	Admin     AdminConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string
	Port        int
	Environment string
}

// DatabaseConfig holds PostgreSQL connection settings for lead storage.
// The database is optional: with an empty host the service records leads
// to the log only.
type DatabaseConfig struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	Name                  string
	SSLMode               string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// Enabled reports whether lead persistence is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// ConnectionString returns a PostgreSQL connection string.
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ChatConfig holds dialogue engine settings.
type ChatConfig struct {
	// SessionTTL is how long an idle session survives before cleanup.
	SessionTTL time.Duration
	// MaxSessions caps the in-memory session registry.
	MaxSessions int
	// MaxMessageLength caps a single user submission, in bytes.
	MaxMessageLength int
}

// AdminConfig holds settings for the admin API surface.
type AdminConfig struct {
	// KeyHash is the bcrypt hash of the X-Admin-Key value that guards
	// the leads listing. Empty disables the admin endpoints.
	KeyHash string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads configuration from environment variables and config files.
// Environment variables take precedence over config file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tradechat")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Missing config file is fine, env and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			Environment: v.GetString("server.env"),
		},
		Database: DatabaseConfig{
			Host:                  v.GetString("database.host"),
			Port:                  v.GetInt("database.port"),
			User:                  v.GetString("database.user"),
			Password:              v.GetString("database.password"),
			Name:                  v.GetString("database.name"),
			SSLMode:               v.GetString("database.sslmode"),
			MaxConnections:        v.GetInt("database.max_connections"),
			MaxIdleConnections:    v.GetInt("database.max_idle_connections"),
			ConnectionMaxLifetime: v.GetDuration("database.connection_max_lifetime"),
		},
		Chat: ChatConfig{
			SessionTTL:       v.GetDuration("chat.session_ttl"),
			MaxSessions:      v.GetInt("chat.max_sessions"),
			MaxMessageLength: v.GetInt("chat.max_message_length"),
		},
		Admin: AdminConfig{
			KeyHash: v.GetString("admin.key_hash"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("rate_limit.requests"),
			Window:   v.GetDuration("rate_limit.window"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "development")

	// Database defaults (host intentionally empty, persistence opt-in)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "tradechat")
	v.SetDefault("database.name", "tradechat")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.max_idle_connections", 5)
	v.SetDefault("database.connection_max_lifetime", "5m")

	// Chat defaults
	v.SetDefault("chat.session_ttl", "30m")
	v.SetDefault("chat.max_sessions", 10000)
	v.SetDefault("chat.max_message_length", 2000)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Rate limit defaults
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Enabled() && c.Database.Password == "" {
		problems = append(problems, "DATABASE_PASSWORD (required when database.host is set)")
	}
	if c.Chat.SessionTTL <= 0 {
		problems = append(problems, "CHAT_SESSION_TTL (must be positive)")
	}
	if c.Chat.MaxMessageLength <= 0 {
		problems = append(problems, "CHAT_MAX_MESSAGE_LENGTH (must be positive)")
	}
	if c.Chat.MaxSessions <= 0 {
		problems = append(problems, "CHAT_MAX_SESSIONS (must be positive)")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
