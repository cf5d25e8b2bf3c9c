package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendGORM   = "gorm"

	// MemoryPath opens a throwaway in-memory database.
	MemoryPath = ":memory:"
)

// Config holds all configuration options for the learning tracker
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Auth        AuthConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Logging     LoggingConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Backend        string `env:"LT_DB_BACKEND"`
	Dir            string `env:"LT_DB_DIR"`
	Filename       string `env:"LT_DB_FILENAME"`
	Path           string `env:"LT_DB_PATH"` // wins over Dir and Filename when set
	DirPermissions uint32 `env:"LT_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"LT_SERVER_ADDR"`
	ReadTimeout     time.Duration `env:"LT_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"LT_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `env:"LT_SERVER_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"LT_SERVER_SHUTDOWN_TIMEOUT"`
}

// AuthConfig holds password hashing configuration
type AuthConfig struct {
	BcryptCost int `env:"LT_AUTH_BCRYPT_COST"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	UsernameMinLength int `env:"LT_VALIDATION_USERNAME_MIN"`
	UsernameMaxLength int `env:"LT_VALIDATION_USERNAME_MAX"`
	PasswordMinLength int `env:"LT_VALIDATION_PASSWORD_MIN"`
	PasswordMaxLength int `env:"LT_VALIDATION_PASSWORD_MAX"`
	TitleMaxLength    int `env:"LT_VALIDATION_TITLE_MAX"`
	TextMaxLength     int `env:"LT_VALIDATION_TEXT_MAX"`
}

// DisplayConfig holds CLI display configuration
type DisplayConfig struct {
	TimeFormat string `env:"LT_DISPLAY_TIME_FORMAT"`
	Color      bool   `env:"LT_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"LT_APP_TIMEOUT"`
	Verbose bool          `env:"LT_APP_VERBOSE"`
}

// LoggingConfig holds structured logging configuration
type LoggingConfig struct {
	Level  string `env:"LT_LOG_LEVEL"`
	Format string `env:"LT_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".lt")

	return &Config{
		Database: DatabaseConfig{
			Backend:        BackendSQLite,
			Dir:            defaultDBDir,
			Filename:       "lt.db",
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			BcryptCost: 10,
		},
		Validation: ValidationConfig{
			UsernameMinLength: 1,
			UsernameMaxLength: 64,
			PasswordMinLength: 1,
			PasswordMaxLength: 72, // bcrypt ignores everything past 72 bytes
			TitleMaxLength:    200,
			TextMaxLength:     4000,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
			Color:      true,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Malformed values are ignored and the previous value kept.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if backend := os.Getenv("LT_DB_BACKEND"); backend != "" {
		c.Database.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("LT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("LT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if path := os.Getenv("LT_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if perms := os.Getenv("LT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration
	if addr := os.Getenv("LT_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if d := os.Getenv("LT_SERVER_READ_TIMEOUT"); d != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(d, c.Server.ReadTimeout)
	}
	if d := os.Getenv("LT_SERVER_WRITE_TIMEOUT"); d != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(d, c.Server.WriteTimeout)
	}
	if d := os.Getenv("LT_SERVER_REQUEST_TIMEOUT"); d != "" {
		c.Server.RequestTimeout = ParseDurationWithFallback(d, c.Server.RequestTimeout)
	}
	if d := os.Getenv("LT_SERVER_SHUTDOWN_TIMEOUT"); d != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(d, c.Server.ShutdownTimeout)
	}

	// Auth configuration
	if cost := os.Getenv("LT_AUTH_BCRYPT_COST"); cost != "" {
		c.Auth.BcryptCost = ParseIntWithFallback(cost, c.Auth.BcryptCost)
	}

	// Validation configuration
	if n := os.Getenv("LT_VALIDATION_USERNAME_MIN"); n != "" {
		c.Validation.UsernameMinLength = ParseIntWithFallback(n, c.Validation.UsernameMinLength)
	}
	if n := os.Getenv("LT_VALIDATION_USERNAME_MAX"); n != "" {
		c.Validation.UsernameMaxLength = ParseIntWithFallback(n, c.Validation.UsernameMaxLength)
	}
	if n := os.Getenv("LT_VALIDATION_PASSWORD_MIN"); n != "" {
		c.Validation.PasswordMinLength = ParseIntWithFallback(n, c.Validation.PasswordMinLength)
	}
	if n := os.Getenv("LT_VALIDATION_PASSWORD_MAX"); n != "" {
		c.Validation.PasswordMaxLength = ParseIntWithFallback(n, c.Validation.PasswordMaxLength)
	}
	if n := os.Getenv("LT_VALIDATION_TITLE_MAX"); n != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(n, c.Validation.TitleMaxLength)
	}
	if n := os.Getenv("LT_VALIDATION_TEXT_MAX"); n != "" {
		c.Validation.TextMaxLength = ParseIntWithFallback(n, c.Validation.TextMaxLength)
	}

	// Display configuration
	if format := os.Getenv("LT_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if color := os.Getenv("LT_DISPLAY_COLOR"); color != "" {
		c.Display.Color = ParseBoolWithFallback(color, c.Display.Color)
	}

	// Application configuration
	if timeout := os.Getenv("LT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("LT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Logging configuration
	if level := os.Getenv("LT_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LT_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	switch c.Database.Backend {
	case BackendSQLite, BackendGORM:
	default:
		return &ConfigError{Field: "database.backend", Message: "backend must be one of: sqlite, gorm"}
	}
	if c.Database.Path == "" {
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.read_timeout", Message: "read and write timeouts must be positive"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate auth configuration
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return &ConfigError{Field: "auth.bcrypt_cost", Message: "bcrypt cost must be between 4 and 31"}
	}

	// Validate validation configuration
	v := c.Validation
	if v.UsernameMinLength < 1 || v.UsernameMaxLength < v.UsernameMinLength {
		return &ConfigError{Field: "validation.username_max_length", Message: "username limits must satisfy 1 <= min <= max"}
	}
	if v.PasswordMinLength < 1 || v.PasswordMaxLength < v.PasswordMinLength {
		return &ConfigError{Field: "validation.password_max_length", Message: "password limits must satisfy 1 <= min <= max"}
	}
	if v.PasswordMaxLength > 72 {
		return &ConfigError{Field: "validation.password_max_length", Message: "password maximum length cannot exceed 72 bytes"}
	}
	if v.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if v.TextMaxLength < 1 {
		return &ConfigError{Field: "validation.text_max_length", Message: "text maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of: debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be text or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
