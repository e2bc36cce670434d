package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Limits   LimitConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	RateCounterBackend string // "memory" or "redis"
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI          string
	GoogleGemini    string
	TwilioAuthToken string
	IngestTopic     string // document ingestion topic
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // default model when a demo has none configured
	LLMBaseURL        string // OpenAI-compatible endpoint
	OllamaBaseURL     string
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
}

type LimitConfig struct {
	TokenBudget        int // per-demo cumulative estimated tokens
	HistoryMaxMessages int
	ChunkSizeTokens    int
	ChunkOverlapTokens int
	RetrievalThreshold float64
	RetrievalLimit     int
	MaxFileSizeBytes   int
	MaxFilesPerKB      int
	MaxChunksPerKB     int
	RatePerMinute      int // inbound messages per demo per minute
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RateCounterBackend: getEnv("RATE_COUNTER_BACKEND", "memory"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "SalesAgent"),
		},
		Keys: APIKeys{
			OpenAI:          getEnv("OPENAI_API_KEY", ""),
			GoogleGemini:    getEnv("GOOGLE_GEMINI_API_KEY", ""),
			TwilioAuthToken: getEnv("TWILIO_AUTH_TOKEN", ""),
			IngestTopic:     getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		},
		Limits: LimitConfig{
			TokenBudget:        getEnvAsInt("TOKEN_BUDGET", 10000),
			HistoryMaxMessages: getEnvAsInt("HISTORY_MAX_MESSAGES", 50),
			ChunkSizeTokens:    getEnvAsInt("CHUNK_SIZE_TOKENS", 768),
			ChunkOverlapTokens: getEnvAsInt("CHUNK_OVERLAP_TOKENS", 64),
			RetrievalThreshold: getEnvAsFloat("RETRIEVAL_THRESHOLD", 0.5),
			RetrievalLimit:     getEnvAsInt("RETRIEVAL_LIMIT", 5),
			MaxFileSizeBytes:   getEnvAsInt("MAX_FILE_SIZE_BYTES", 10*1024*1024),
			MaxFilesPerKB:      getEnvAsInt("MAX_FILES_PER_KB", 20),
			MaxChunksPerKB:     getEnvAsInt("MAX_CHUNKS_PER_KB", 2000),
			RatePerMinute:      getEnvAsInt("RATE_PER_MINUTE", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
