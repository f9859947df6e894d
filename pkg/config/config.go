package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
		BaseURL string
	}

	// Cloudinary configuration (the character record host)
	Cloudinary struct {
		CloudName    string
		APIKey       string
		APISecret    string
		UploadPreset string
		DataFolder   string
		BaseURL      string
	}

	// Redis configuration (provider settings store)
	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// JWT configuration
	JWT struct {
		Secret string
	}

	// Provider dispatch configuration
	Providers struct {
		AnthropicURL     string
		AnthropicVersion string
		OpenAIURL        string
		MaxTokens        int
	}

	// Upload limits
	Uploads struct {
		MaxImageBytes   int64
		ContextValueMax int
	}

	// Chat session settings
	Sessions struct {
		TTL         time.Duration
		PurgeWindow time.Duration
		MaxSessions int
	}

	// Security configuration
	Security struct {
		AllowedOrigins []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}
}

var (
	instance *Config
	once     sync.Once
)

// New creates a new Config instance with values from environment variables
// Uses singleton pattern to ensure only one instance exists
func New() *Config {
	once.Do(func() {
		// Load .env file if exists
		godotenv.Load()

		instance = &Config{}

		// Server config
		instance.Server.Port = getEnvString("PORT", "8081")
		instance.Server.Env = getEnvString("APP_ENV", "development")
		instance.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)
		instance.Server.BaseURL = getEnvString("BASE_URL", "http://localhost:"+instance.Server.Port)

		// Cloudinary config
		instance.Cloudinary.CloudName = getEnvString("CLOUDINARY_CLOUD_NAME", "")
		instance.Cloudinary.APIKey = getEnvString("CLOUDINARY_API_KEY", "")
		instance.Cloudinary.APISecret = getEnvString("CLOUDINARY_API_SECRET", "")
		instance.Cloudinary.UploadPreset = getEnvString("CLOUDINARY_UPLOAD_PRESET", "")
		instance.Cloudinary.DataFolder = getEnvString("CLOUDINARY_DATA_FOLDER", "character-data")
		instance.Cloudinary.BaseURL = getEnvString("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1")

		// Redis config
		instance.Redis.Addr = getEnvString("REDIS_ADDR", "localhost:6379")
		instance.Redis.Password = getEnvString("REDIS_PASSWORD", "")
		instance.Redis.DB = getEnvInt("REDIS_DB", 0)

		// JWT config
		instance.JWT.Secret = getEnvString("JWT_SECRET", "")

		// Provider dispatch config
		instance.Providers.AnthropicURL = getEnvString("ANTHROPIC_API_URL", "https://api.anthropic.com/v1/messages")
		instance.Providers.AnthropicVersion = getEnvString("ANTHROPIC_VERSION", "2023-06-01")
		instance.Providers.OpenAIURL = getEnvString("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions")
		instance.Providers.MaxTokens = getEnvInt("PROVIDER_MAX_TOKENS", 1000)

		// Upload limits
		instance.Uploads.MaxImageBytes = getEnvInt64("MAX_IMAGE_BYTES", 10<<20) // 10MB
		instance.Uploads.ContextValueMax = getEnvInt("CONTEXT_VALUE_MAX", 950)

		// Session settings
		instance.Sessions.TTL = getEnvDuration("SESSION_TTL", 2*time.Hour)
		instance.Sessions.PurgeWindow = getEnvDuration("SESSION_PURGE_WINDOW", 10*time.Minute)
		instance.Sessions.MaxSessions = getEnvInt("SESSION_MAX", 1000)

		// Security config
		instance.Security.AllowedOrigins = getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"})

		// Logging config
		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
