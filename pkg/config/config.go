package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	OpenRouter OpenRouterConfig
	Context    ContextConfig
	Learning   LearningConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OpenRouterConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	Timeout         time.Duration
	MaxAnswerTokens int
}

type ContextConfig struct {
	SourceURL    string
	MaxChars     int
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

type LearningConfig struct {
	Enabled     bool
	MaxAttempts int
	Timeout     time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// Missing .env is fine, plain environment variables work too (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	llmTimeout, _ := strconv.Atoi(getEnv("OPENROUTER_TIMEOUT", "60"))
	maxAnswerTokens, _ := strconv.Atoi(getEnv("OPENROUTER_MAX_ANSWER_TOKENS", "512"))
	contextMaxChars, _ := strconv.Atoi(getEnv("CONTEXT_MAX_CHARS", "4000"))
	contextFetchTimeout, _ := strconv.Atoi(getEnv("CONTEXT_FETCH_TIMEOUT", "10"))
	contextCacheTTL, _ := strconv.Atoi(getEnv("CONTEXT_CACHE_TTL_MINUTES", "10"))
	learningAttempts, _ := strconv.Atoi(getEnv("LEARNING_MAX_ATTEMPTS", "2"))
	learningTimeout, _ := strconv.Atoi(getEnv("LEARNING_TIMEOUT", "90"))
	learningEnabled := getEnv("LEARNING_ENABLED", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "chatbot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:          getEnv("OPENROUTER_API_KEY", ""),
			Model:           getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.1-8b-instruct"),
			BaseURL:         getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Timeout:         time.Duration(llmTimeout) * time.Second,
			MaxAnswerTokens: maxAnswerTokens,
		},
		Context: ContextConfig{
			SourceURL:    getEnv("CONTEXT_SOURCE_URL", ""),
			MaxChars:     contextMaxChars,
			FetchTimeout: time.Duration(contextFetchTimeout) * time.Second,
			CacheTTL:     time.Duration(contextCacheTTL) * time.Minute,
		},
		Learning: LearningConfig{
			Enabled:     learningEnabled,
			MaxAttempts: learningAttempts,
			Timeout:     time.Duration(learningTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
