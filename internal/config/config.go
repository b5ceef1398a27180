package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the SmartCoach AI service
type Config struct {
	Server    ServerConfig
	Corpus    CorpusConfig
	Retrieval RetrievalConfig
	LLM       LLMConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CorpusConfig holds knowledge-base loading configuration
type CorpusConfig struct {
	DataDir string
}

// RetrievalConfig holds search index tuning
type RetrievalConfig struct {
	TopK     int
	PlanTopK int
	MinScore float64
}

// LLMConfig holds generative model configuration
type LLMConfig struct {
	Provider string
	BaseURL  string
	Model    string
	APIKey   string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         GetStringEnv("SERVER_PORT", "8000"),
			ReadTimeout:  GetDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: GetDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Corpus: CorpusConfig{
			DataDir: GetStringEnv("CORPUS_DATA_DIR", "./data"),
		},
		Retrieval: RetrievalConfig{
			TopK:     GetIntEnv("RETRIEVAL_TOP_K", 5),
			PlanTopK: GetIntEnv("RETRIEVAL_PLAN_TOP_K", 8),
			MinScore: GetFloatEnv("RETRIEVAL_MIN_SCORE", 0.05),
		},
		LLM: LLMConfig{
			Provider: GetStringEnv("LLM_PROVIDER", "gemini"),
			BaseURL:  GetStringEnv("LLM_BASE_URL", ""),
			Model:    GetStringEnv("LLM_MODEL", "gemini-2.5-flash"),
			APIKey:   GetStringEnv("LLM_API_KEY", ""),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
