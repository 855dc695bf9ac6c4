// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	Documents   DocumentsConfig
	RateLimit   RateLimitConfig
	I18n        I18nConfig
	Log         LogConfig
	Site        SiteConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	// Lookups slower than this stream a loading indicator before the page body.
	// Zero disables streaming.
	LoadingIndicatorDelayMs int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
	PublicView   string
	SeedDemoData bool
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
	PresignTTL      int // in seconds
}

type DocumentsConfig struct {
	FetchTimeout int // in seconds
	MaxSizeMB    int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

type I18nConfig struct {
	DefaultLocale string
}

type LogConfig struct {
	Level  string
	Format string
}

type SiteConfig struct {
	Name    string
	HomeURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:                    getEnv("SERVER_PORT", "8080"),
			Host:                    getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:             getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:            getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:             getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			LoadingIndicatorDelayMs: getEnvAsInt("LOADING_INDICATOR_DELAY_MS", 250),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "certified_products"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
			PublicView:   getEnv("DB_PUBLIC_VIEW", "public_products"),
			SeedDemoData: getEnvAsBool("DB_SEED_DEMO_DATA", false),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "eu-central-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
			PresignTTL:      getEnvAsInt("AWS_PRESIGN_TTL", 300),
		},
		Documents: DocumentsConfig{
			FetchTimeout: getEnvAsInt("DOCUMENT_FETCH_TIMEOUT", 30),
			MaxSizeMB:    getEnvAsInt("DOCUMENT_MAX_SIZE_MB", 50),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		Site: SiteConfig{
			Name:    getEnv("SITE_NAME", "Certified Product Registry"),
			HomeURL: getEnv("SITE_HOME_URL", "/"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Database.PublicView == "" {
		return fmt.Errorf("public view name must not be empty")
	}

	if c.AWS.AccessKeyID != "" && c.AWS.S3Bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET is required when AWS credentials are set")
	}

	if c.Server.LoadingIndicatorDelayMs < 0 {
		return fmt.Errorf("LOADING_INDICATOR_DELAY_MS must not be negative")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit requires a positive rate and burst")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (s ServerConfig) LoadingIndicatorDelay() time.Duration {
	return time.Duration(s.LoadingIndicatorDelayMs) * time.Millisecond
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
