package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported document store backends
const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
)

// Config holds all configuration for the loader and editor
type Config struct {
	// Document store
	Backend         string `json:"backend"`
	CredentialsPath string `json:"credentials_path"`
	Collection      string `json:"collection"`
	MongoURI        string `json:"mongo_uri"`
	MongoDatabase   string `json:"mongo_database"`

	// Loader input
	InputPath   string        `json:"input_path"`
	HTTPTimeout time.Duration `json:"http_timeout"`
	HTTPRetries int           `json:"http_retries"`
	LockPath    string        `json:"lock_path"`

	// Redis seen-id cache, disabled when RedisURL is empty
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// Editor snapshots
	ArchivePath string `json:"archive_path"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`
	R2Region    string `json:"r2_region"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogOutput string `json:"log_output"`
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Backend:         getEnv("STORE_BACKEND", BackendFirestore),
		CredentialsPath: getEnv("CREDENTIALS_PATH", "backend_python/google-services.json"),
		Collection:      getEnv("COLLECTION", "news"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "newsseed"),

		InputPath:   getEnv("INPUT_PATH", "backend_python/news.json"),
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		HTTPRetries: getEnvAsInt("HTTP_RETRIES", 3),
		LockPath:    getEnv("LOCK_PATH", filepath.Join(os.TempDir(), "newsseed-loader.lock")),

		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "news:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 720*time.Hour), // 30 days

		ArchivePath: getEnv("ARCHIVE_PATH", "./data/snapshots"),

		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", ""),
		R2Region:    getEnv("R2_REGION", "auto"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogOutput: getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFirestore, BackendMongo:
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	if c.Collection == "" {
		return fmt.Errorf("collection name must not be empty")
	}
	return nil
}

// ArchiveUploadEnabled reports whether snapshots are also pushed to R2
func (c *Config) ArchiveUploadEnabled() bool {
	return c.R2Bucket != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
