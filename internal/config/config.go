package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/department"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database    DatabaseConfig
	App         AppConfig
	Dashboard   DashboardConfig
	Departments DepartmentsConfig
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string

	// SQLiteBusyTimeout bounds the wait on a locked SQLite file
	SQLiteBusyTimeout time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

type DashboardConfig struct {
	TopN int
}

// DepartmentsConfig selects the department catalog: File takes precedence over Names,
// and the built-in list is used when neither is set.
type DepartmentsConfig struct {
	File  string
	Names []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	busyTimeout, err := time.ParseDuration(getEnv("SQLITE_BUSY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SQLITE_BUSY_TIMEOUT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "hrms"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "hrms.db"),

		SQLiteBusyTimeout: busyTimeout,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Local"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	topN, err := strconv.Atoi(getEnv("DASHBOARD_TOP_N", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TOP_N: %w", err)
	}
	config.Dashboard = DashboardConfig{TopN: topN}

	config.Departments = DepartmentsConfig{
		File:  getEnv("DEPARTMENTS_FILE", ""),
		Names: getEnvSlice("DEPARTMENTS", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
		if c.Database.SQLiteBusyTimeout <= 0 {
			return fmt.Errorf("SQLITE_BUSY_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use %q or %q)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.Dashboard.TopN <= 0 {
		return fmt.Errorf("DASHBOARD_TOP_N must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if _, err := parseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// Location returns the reference time zone for "today"
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// Level returns LOG_LEVEL as a slog level
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.App.LogLevel)
	return level
}

// DepartmentCatalog builds the configured department catalog
func (c *Config) DepartmentCatalog() (*department.Catalog, error) {
	if c.Departments.File != "" {
		return department.Load(c.Departments.File)
	}
	if len(c.Departments.Names) > 0 {
		return department.New(c.Departments.Names)
	}
	return department.New(department.DefaultNames)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
