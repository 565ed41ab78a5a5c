package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// LLM
	LLMProvider string
	APIKey      string

	// Redis (optional, shared rate limit counters)
	RedisURL string

	// Rate limiting
	RateLimitRequests      int
	RateLimitWindowSeconds int
	TrustProxy             bool

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists; production reads the real environment only
	if !isProductionEnv(firstEnv("ENV", "NODE_ENV")) {
		godotenv.Load()
	}

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "3000"),
		Env:                    orDefault(firstEnv("ENV", "NODE_ENV"), "development"),
		LLMProvider:            strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "gemini")),
		APIKey:                 firstEnv("API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"),
		RedisURL:               getEnvOrDefault("REDIS_URL", ""),
		RateLimitRequests:      getEnvAsIntOrDefault("RATE_LIMIT_REQUESTS", 5),
		RateLimitWindowSeconds: getEnvAsIntOrDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		TrustProxy:             getEnvAsBoolOrDefault("TRUST_PROXY", false),
		FrontendURL:            orDefault(firstEnv("FRONTEND_URL", "CLIENT_URL"), "http://localhost:5173"),
	}

	return cfg
}

// IsProduction reports whether CORS should be locked to FrontendURL.
func (c *Config) IsProduction() bool {
	return isProductionEnv(c.Env)
}

func isProductionEnv(env string) bool {
	return strings.EqualFold(strings.TrimSpace(env), "production")
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}

func orDefault(val, defaultVal string) string {
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}
