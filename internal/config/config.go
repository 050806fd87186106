package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Shared secret expected in the X-Cron-Key header of the generation
	// trigger endpoint. Empty disables the endpoint.
	CronSecret string

	// Cron expression for the in-process generation schedule.
	GenerationSchedule string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "gagyebu"),
		DBPassword: getEnv("DB_PASSWORD", "gagyebu"),
		DBName:     getEnv("DB_NAME", "gagyebu"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		CronSecret:         getEnv("CRON_SECRET", ""),
		GenerationSchedule: getEnv("GENERATION_SCHEDULE", "30 0 * * *"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
