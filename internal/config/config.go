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

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	DaycareName    string
	Location       *time.Location
	RequestTimeout time.Duration
	Database       DatabaseConfig
	JWT            JWTConfig
	Receipt        ReceiptConfig
	Billing        BillingConfig
	Seed           SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // mysql | postgres | memory
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // postgres only
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// ReceiptConfig holds PDF receipt configuration
type ReceiptConfig struct {
	Engine          string // native | wkhtmltopdf
	WkhtmltopdfPath string
	Timeout         time.Duration
	CurrencyLabel   string
}

// BillingConfig holds the late-payment rule settings
type BillingConfig struct {
	LateSweepEnabled bool
	LateGraceDays    int
}

// SeedConfig holds the default administrator created on first boot
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Africa/Abidjan"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	database := loadDatabaseConfig(appMode)
	switch database.Driver {
	case "mysql", "postgres", "memory":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql', 'postgres' or 'memory')", database.Driver)
	}

	receipt := loadReceiptConfig()
	if receipt.Engine != "native" && receipt.Engine != "wkhtmltopdf" {
		return nil, fmt.Errorf("invalid PDF_ENGINE: '%s' (must be 'native' or 'wkhtmltopdf')", receipt.Engine)
	}

	config := &Config{
		AppMode:        appMode,
		Port:           getEnv("PORT", "5000"),
		DaycareName:    getEnv("DAYCARE_NAME", "Garderie Management"),
		Location:       loc,
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		Database:       database,
		JWT:            loadJWTConfig(appMode),
		Receipt:        receipt,
		Billing:        loadBillingConfig(),
		Seed:           loadSeedConfig(),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, database.Driver)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Driver:   strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "mysql"))),
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "garderie"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 60*24),
		RefreshTokenDays: getEnvInt("REFRESH_TOKEN_DAYS", 7),
	}
}

func loadReceiptConfig() ReceiptConfig {
	return ReceiptConfig{
		Engine:          strings.ToLower(strings.TrimSpace(getEnv("PDF_ENGINE", "native"))),
		WkhtmltopdfPath: getEnv("WKHTMLTOPDF_PATH", "wkhtmltopdf"),
		Timeout:         time.Duration(getEnvInt("PDF_TIMEOUT_SECONDS", 20)) * time.Second,
		CurrencyLabel:   getEnv("CURRENCY_LABEL", "FCFA"),
	}
}

func loadBillingConfig() BillingConfig {
	enabled, _ := strconv.ParseBool(getEnv("LATE_SWEEP_ENABLED", "false"))

	return BillingConfig{
		LateSweepEnabled: enabled,
		LateGraceDays:    getEnvInt("LATE_GRACE_DAYS", 5),
	}
}

func loadSeedConfig() SeedConfig {
	return SeedConfig{
		AdminName:     getEnv("SEED_ADMIN_NAME", "Administrateur"),
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@garderie.com"),
		AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
