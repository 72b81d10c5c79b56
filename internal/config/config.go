package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // empty selects the in-memory backend
	CORSOrigins string
	TablePrefix string
	// Credentials
	TokenSecret string
	TokenTTL    time.Duration
	// Content storage
	StorageType      string // local, s3 or memory
	StorageLocalPath string
	StorageLocalURL  string
	StorageS3Region  string
	StorageS3Bucket  string
	StorageS3Prefix  string
	StorageCFURL     string
	StorageCFKeyID   string
	StorageCFKeyPath string
	MaxUploadBytes   int64
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:      getTablePrefix(env),
		TokenSecret:      getEnv("TOKEN_SECRET", ""),
		TokenTTL:         getDuration("TOKEN_TTL", 7*24*time.Hour),
		StorageType:      getEnv("STORAGE_TYPE", "local"),
		StorageLocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		StorageLocalURL:  getEnv("STORAGE_LOCAL_URL", "/media"),
		StorageS3Region:  getEnv("STORAGE_S3_REGION", ""),
		StorageS3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
		StorageS3Prefix:  getEnv("STORAGE_S3_PREFIX", ""),
		StorageCFURL:     getEnv("STORAGE_CF_URL", ""),
		StorageCFKeyID:   getEnv("STORAGE_CF_KEY_PAIR_ID", ""),
		StorageCFKeyPath: getEnv("STORAGE_CF_KEY_PATH", ""),
		MaxUploadBytes:   getInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      int(getInt64("LOG_MAX_FILES", 10)),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
