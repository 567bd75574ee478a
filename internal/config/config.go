package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"amanah/internal/anomaly"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// RequestTimeout bounds the full detection pipeline per request.
	RequestTimeout time.Duration

	// Detection thresholds for the statistical scorer.
	Detection anomaly.Config
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	detection := anomaly.DefaultConfig()
	detection.AnomalyThreshold = getEnvFloat("ANOMALY_THRESHOLD", detection.AnomalyThreshold)
	detection.HighHourlyRate = getEnvFloat("ANOMALY_HIGH_HOURLY_RATE", detection.HighHourlyRate)
	detection.ElevatedHourlyRate = getEnvFloat("ANOMALY_ELEVATED_HOURLY_RATE", detection.ElevatedHourlyRate)
	detection.BusinessHourStart = getEnvInt("ANOMALY_BUSINESS_HOUR_START", detection.BusinessHourStart)
	detection.BusinessHourEnd = getEnvInt("ANOMALY_BUSINESS_HOUR_END", detection.BusinessHourEnd)

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
		Detection:      detection,
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

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
