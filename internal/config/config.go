package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	Storage      StorageConfig
	Sweep        SweepConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

// SweepConfig tunes the daily cron sweeps. The run hour is in UTC.
// Acknowledgment reminders repeat at UrgentRepeat while the deadline is
// within UrgentWindow, and at NoticeRepeat while within NoticeWindow.
type SweepConfig struct {
	RunHourUTC        int
	ExpiryWarningDays int
	UrgentWindow      time.Duration
	UrgentRepeat      time.Duration
	NoticeWindow      time.Duration
	NoticeRepeat      time.Duration
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, relying on environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr-backend"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	allowedOrigins := getEnvSlice("ALLOWED_ORIGINS")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: allowedOrigins,
	}

	// JWT configuration
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// File storage configuration
	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// Sweep configuration
	runHour, err := strconv.Atoi(getEnv("SWEEP_RUN_HOUR_UTC", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_RUN_HOUR_UTC: %w", err)
	}
	warningDays, err := strconv.Atoi(getEnv("SWEEP_EXPIRY_WARNING_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_EXPIRY_WARNING_DAYS: %w", err)
	}
	urgentWindow, err := time.ParseDuration(getEnv("SWEEP_URGENT_WINDOW", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_URGENT_WINDOW: %w", err)
	}
	urgentRepeat, err := time.ParseDuration(getEnv("SWEEP_URGENT_REPEAT", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_URGENT_REPEAT: %w", err)
	}
	noticeWindow, err := time.ParseDuration(getEnv("SWEEP_NOTICE_WINDOW", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_NOTICE_WINDOW: %w", err)
	}
	noticeRepeat, err := time.ParseDuration(getEnv("SWEEP_NOTICE_REPEAT", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_NOTICE_REPEAT: %w", err)
	}

	config.Sweep = SweepConfig{
		RunHourUTC:        runHour,
		ExpiryWarningDays: warningDays,
		UrgentWindow:      urgentWindow,
		UrgentRepeat:      urgentRepeat,
		NoticeWindow:      noticeWindow,
		NoticeRepeat:      noticeRepeat,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Sweep.RunHourUTC < 0 || c.Sweep.RunHourUTC > 23 {
		return fmt.Errorf("SWEEP_RUN_HOUR_UTC must be between 0 and 23")
	}
	if c.OAuth2Google.ClientID != "" {
		if c.OAuth2Google.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET is required when CLIENT_ID is set")
		}
		if c.OAuth2Google.RedirectURL == "" {
			return fmt.Errorf("REDIRECT_URL is required when CLIENT_ID is set")
		}
		if len(c.OAuth2Google.Scopes) == 0 {
			return fmt.Errorf("SCOPES is required when CLIENT_ID is set")
		}
	}
	return nil
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
