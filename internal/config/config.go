package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Assistant service
	ChatbotServiceURL string
	ChatTimeoutSecs   int
	HistoryWindow     int

	// Sessions
	RedisURL       string
	SessionTTLMins int

	// HTTP
	AllowedOrigins  string
	RateLimitPerMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		ChatbotServiceURL: mustGetEnv("CHATBOT_SERVICE_URL"),
		ChatTimeoutSecs:   getEnvAsIntOrDefault("CHAT_TIMEOUT_SECONDS", 30),
		HistoryWindow:     getEnvAsIntOrDefault("HISTORY_WINDOW", 10),
		RedisURL:          getEnvOrDefault("REDIS_URL", ""),
		SessionTTLMins:    getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 30),
		AllowedOrigins:    getEnvOrDefault("ALLOWED_ORIGINS", "*"),
		RateLimitPerMin:   getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
	}

	return cfg
}

// AllowedOriginsList splits the comma-separated ALLOWED_ORIGINS value.
func (c *Config) AllowedOriginsList() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
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

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
