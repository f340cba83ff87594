package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	HR           HRConfig
	OAuth2Google OAuth2GoogleConfig
	Jobs         JobsConfig
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
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
	FrontendURL        string
}

// HRConfig holds the single HR account and employee defaults
type HRConfig struct {
	Username                string
	PasswordHash            string
	Password                string
	DefaultEmployeePassword string
}

type OAuth2GoogleConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	Scopes        []string
	AllowedEmails []string
}

type JobsConfig struct {
	ResetInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "hr_dashboard"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "hr_dashboard.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.HR = HRConfig{
		Username:                getEnv("HR_USERNAME", "admin"),
		PasswordHash:            getEnv("HR_PASSWORD_HASH", ""),
		Password:                getEnv("HR_PASSWORD", ""),
		DefaultEmployeePassword: getEnv("DEFAULT_EMPLOYEE_PASSWORD", "1234"),
	}

	// OAuth2 Google Configuration, optional
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:      getEnv("CLIENT_ID", ""),
		ClientSecret:  getEnv("CLIENT_SECRET", ""),
		RedirectURL:   getEnv("REDIRECT_URL", ""),
		Scopes:        getEnvSlice("SCOPES", ""),
		AllowedEmails: getEnvSlice("HR_GOOGLE_EMAILS", ""),
	}

	resetInterval, err := time.ParseDuration(getEnv("RESET_JOB_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_JOB_INTERVAL: %w", err)
	}
	config.Jobs = JobsConfig{ResetInterval: resetInterval}

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
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	for name, value := range map[string]string{
		"JWT_ACCESS_EXPIRATION_TIME":  c.JWT.AccessExpiration,
		"JWT_REFRESH_EXPIRATION_TIME": c.JWT.RefreshExpiration,
	} {
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration", name)
		}
	}

	if c.HR.Username == "" {
		return fmt.Errorf("HR_USERNAME is required")
	}
	if c.HR.PasswordHash == "" && c.HR.Password == "" {
		return fmt.Errorf("HR_PASSWORD_HASH or HR_PASSWORD is required")
	}
	if c.HR.DefaultEmployeePassword == "" {
		return fmt.Errorf("DEFAULT_EMPLOYEE_PASSWORD is required")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	if c.OAuth2Google.ClientID != "" {
		if c.OAuth2Google.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET is required when CLIENT_ID is set")
		}
		if c.OAuth2Google.RedirectURL == "" {
			return fmt.Errorf("REDIRECT_URL is required when CLIENT_ID is set")
		}
		if len(c.OAuth2Google.AllowedEmails) == 0 {
			slog.Warn("Google sign-in is enabled but HR_GOOGLE_EMAILS is empty, nobody can sign in with Google")
		}
	}

	if c.Jobs.ResetInterval <= 0 {
		return fmt.Errorf("RESET_JOB_INTERVAL must be positive")
	}
	return nil
}

// Location returns the timezone in which calendar days are evaluated
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// HRPasswordHash returns the configured bcrypt hash, hashing HR_PASSWORD when no hash is given
func (c *Config) HRPasswordHash() (string, error) {
	if c.HR.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.HR.PasswordHash)); err != nil {
			return "", fmt.Errorf("HR_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
		return c.HR.PasswordHash, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.HR.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash HR_PASSWORD: %w", err)
	}
	return string(hash), nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether cookies should be marked Secure
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
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
