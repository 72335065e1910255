package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FetcherMode    string // "http" or "browser"
	FetchTimeoutMs int
	MaxRetries     int
	MaxConcurrency int
	RateLimitMs    int

	UserAgent      string
	ChromeBin      string
	CurrencySymbol string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		FetcherMode:    getEnv("FETCHER_MODE", "http"),
		FetchTimeoutMs: getEnvInt("FETCH_TIMEOUT_MS", 30000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 1),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 1),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),

		UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "£"),
	}
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
