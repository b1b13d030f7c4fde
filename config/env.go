package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string

	// Authentication
	JWTSecret string

	// Push notifications
	FCMProjectId        string
	FCMCredentialsFile  string
	NotificationTopic   string
	NotificationGroupId string

	// Object storage
	StorageBucket   string
	StorageRegion   string
	StorageEndpoint string

	// Other
	KafkaBroker string
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

// loadConfig loads and validates all environment variables
func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		// Database - required
		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),

		// JWT - required
		JWTSecret: getEnvWithDefault("JWT_SECRET", "dummyjwt"),

		// FCM - required for push delivery
		FCMProjectId:        getEnv("FCM_PROJECT_ID"),
		FCMCredentialsFile:  getEnv("FCM_CREDENTIALS_FILE"),
		NotificationTopic:   getEnvWithDefault("NOTIFICATION_TOPIC", "race-notifications"),
		NotificationGroupId: getEnvWithDefault("NOTIFICATION_GROUP_ID", "notification-dispatcher"),

		// Object storage - required for photo uploads
		StorageBucket:   getEnv("STORAGE_BUCKET"),
		StorageRegion:   getEnvWithDefault("STORAGE_REGION", "ap-south-1"),
		StorageEndpoint: getEnv("STORAGE_ENDPOINT"),

		// Other
		KafkaBroker: getEnvWithDefault("KAFKA_BROKER", "localhost:9092"),
	}

	appConfig = config
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Helper functions
func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" && IsProduction() {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development
func IsDevelopment() bool {
	return !IsProduction()
}
