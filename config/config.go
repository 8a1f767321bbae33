package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration, loaded from the environment
type Config struct {
	DatabaseURL    string
	Host           string
	Port           string
	AllowedOrigins string
	BaseURL        string

	// Scraping
	ScraperAPIKey  string
	FetchTimeout   time.Duration
	RenderTimeout  time.Duration
	CheckSchedule  string

	// Email
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// API
	RateLimitRPS     float64
	LoggingEnabled   bool
	RateLimitEnabled bool
}

// Load reads the configuration from environment variables, applying
// sensible defaults for everything except DATABASE_URL
func Load() *Config {
	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),

		ScraperAPIKey: os.Getenv("SCRAPER_API_KEY"),
		FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		RenderTimeout: getEnvDuration("RENDER_TIMEOUT", 60*time.Second),
		// Cron spec with a seconds field: every 12 hours
		CheckSchedule: getEnv("CHECK_SCHEDULE", "0 0 */12 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SenderEmail:  getEnv("SENDER_EMAIL", "alerts@pricedrop.local"),

		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 5.0),
		LoggingEnabled:   getEnvBool("API_LOGGING_ENABLED", true),
		RateLimitEnabled: getEnvBool("API_RATE_LIMIT_ENABLED", true),
	}
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
