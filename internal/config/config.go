package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	OpenAIAPIKey  string
	Model         string
	// Base URL of the customer-facing frontend, used for navigational replies
	FrontendURL string
	// Base URL of the commerce platform API the intent handlers query
	APIBaseURL string
	BrandName  string
	// Database
	DatabaseURL string
	// Optional yaml file overriding the built-in intent catalog and personas
	IntentsFile string
	// Sessions idle longer than this are evicted from the in-memory store
	SessionIdleTTL time.Duration
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           getEnvDefault("PORT", "8080"),
		AllowedOrigin:  getEnvDefault("ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:          getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		FrontendURL:    getEnvDefault("FRONTEND_URL", "http://localhost:5173"),
		APIBaseURL:     getEnvDefault("INTERNAL_API_BASE_URL", "http://localhost:3000"),
		BrandName:      getEnvDefault("BRAND_NAME", "Qwikko"),
		DatabaseURL:    os.Getenv("DB_URL"),
		IntentsFile:    getEnvDefault("INTENTS_FILE", "./prompts/intents.yaml"),
		SessionIdleTTL: time.Duration(getEnvIntDefault("SESSION_IDLE_TTL_MINUTES", 60)) * time.Minute,
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; model calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
