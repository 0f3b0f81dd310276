package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Generative provider (OpenAI-compatible). Empty APIKey disables
	// the provider tier entirely — no call is attempted.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// External review source.
	RapidAPIKey  string
	RapidAPIHost string

	MaxReviewsPerProduct int
	ScrapingDelayMs      int
	MaxConcurrency       int
	MaxRetries           int

	// DisableLexicon skips the lexicon-scoring tier, leaving only the
	// keyword heuristic as fallback.
	DisableLexicon bool

	OutputDir string
	ChromeBin string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "sentiment"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "sentiment123"),
		PostgresDB:       getEnv("POSTGRES_DB", "sentiment_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		LLMAPIKey:  getEnv("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:   getEnv("LLM_MODEL", "gpt-4o-mini"),

		RapidAPIKey:  getEnv("RAPIDAPI_KEY", ""),
		RapidAPIHost: getEnv("RAPIDAPI_HOST", "real-time-amazon-data.p.rapidapi.com"),

		MaxReviewsPerProduct: getEnvInt("MAX_REVIEWS_PER_PRODUCT", 50),
		ScrapingDelayMs:      getEnvInt("SCRAPING_DELAY_MS", 1000),
		MaxConcurrency:       getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:           getEnvInt("MAX_RETRIES", 3),

		DisableLexicon: getEnvBool("DISABLE_LEXICON", false),

		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		ChromeBin: getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
