package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	RabbitMQURL string
	QueueName   string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	DedupWindow     time.Duration
	StalenessMaxAge time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		RabbitMQURL: getEnv("RABBITMQ_URL", "amqp://localhost"),
		QueueName:   getEnv("PROFILE_UPDATES_QUEUE", "profile_updates"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "profile_avatars"),
	}

	// Parsing durations
	var err error
	cfg.DedupWindow, err = parseDuration(getEnv("EVENT_DEDUP_WINDOW", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_DEDUP_WINDOW: %w", err)
	}
	cfg.StalenessMaxAge, err = parseDuration(getEnv("EVENT_STALENESS_MAX_AGE", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_STALENESS_MAX_AGE: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
