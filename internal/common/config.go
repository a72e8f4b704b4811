package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Transcribe TranscribeConfig
	Media      MediaConfig
	Database   DatabaseConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// LLMConfig holds configuration for the chat-completions client
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	VisionModel string
	TextModel   string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// TranscribeConfig holds configuration for the speech-to-text client
type TranscribeConfig struct {
	Model   string
	Timeout time.Duration
}

// MediaConfig holds per-stage timeouts and limits for the video path
type MediaConfig struct {
	ResolveTimeout   time.Duration
	OEmbedTimeout    time.Duration
	RenderTimeout    time.Duration
	DownloadTimeout  time.Duration
	MaxDownloadBytes int64
}

// DatabaseConfig holds configuration for the optional extraction-history store
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	HealthTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			VisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o"),
			TextModel:   getEnv("OPENAI_TEXT_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.3),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Transcribe: TranscribeConfig{
			Model:   getEnv("TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe"),
			Timeout: getEnvAsDuration("TRANSCRIBE_TIMEOUT", 2*time.Minute),
		},
		Media: MediaConfig{
			ResolveTimeout:   getEnvAsDuration("MEDIA_RESOLVE_TIMEOUT", 10*time.Second),
			OEmbedTimeout:    getEnvAsDuration("MEDIA_OEMBED_TIMEOUT", 10*time.Second),
			RenderTimeout:    getEnvAsDuration("MEDIA_RENDER_TIMEOUT", 30*time.Second),
			DownloadTimeout:  getEnvAsDuration("MEDIA_DOWNLOAD_TIMEOUT", 2*time.Minute),
			MaxDownloadBytes: getEnvAsInt64("MEDIA_MAX_DOWNLOAD_BYTES", 64<<20),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			HealthTimeout:   getEnvAsDuration("DB_HEALTH_TIMEOUT", 3*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError(ErrUpstreamAuth, "OPENAI_API_KEY is required", nil)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError(ErrMissingInput, "HTTP_ADDR is required", nil)
	}
	return nil
}
