package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	RedisAddr        string
	LoginMaxAttempts int
	LoginWindow      time.Duration
	UploadDir        string
	LogLevel         string
	LogFormat        string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	loginWindow := 10 * time.Minute
	if w := os.Getenv("LOGIN_WINDOW"); w != "" {
		if parsed, err := time.ParseDuration(w); err == nil {
			loginWindow = parsed
		}
	}

	loginMaxAttempts := 10
	if m := os.Getenv("LOGIN_MAX_ATTEMPTS"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed > 0 {
			loginMaxAttempts = parsed
		}
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "campusbuddy"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  accessExpiry,
		JWTRefreshExpiry: refreshExpiry,
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		LoginMaxAttempts: loginMaxAttempts,
		LoginWindow:      loginWindow,
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
