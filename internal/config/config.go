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
	Port        string
	Env         string // development, staging, production
	ProjectName string

	// LLM
	LLMProvider   string // gemini or claude
	GeminiAPIKey  string
	GeminiModel   string
	ClaudeAPIKey  string
	ClaudeBaseURL string
	ClaudeModel   string

	// Job search
	JobProvider   string // jooble, jsearch, adzuna, remotive or none
	JoobleAPIKey  string
	JoobleHost    string
	RapidAPIKey   string
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
	JobResults    int
	DefaultCity   string

	// Uploads
	MaxFileSizeBytes int64

	// PDF rendering
	FontPath string

	// Rate Limiting
	RateLimitRPS int

	// CORS
	AllowedOrigins []string
}

const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"

	JobsJooble   = "jooble"
	JobsJSearch  = "jsearch"
	JobsAdzuna   = "adzuna"
	JobsRemotive = "remotive"
	JobsNone     = "none"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
}

func Load() (*Config, error) {
	// .env is optional; variables already in the environment take precedence
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		Env:              getEnv("ENV", "development"),
		ProjectName:      getEnv("PROJECT_NAME", "CV Optimizer API"),
		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ClaudeAPIKey:     getEnv("CLAUDE_API_KEY", ""),
		ClaudeBaseURL:    getEnv("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-sonnet-4-5-20250929"),
		JobProvider:      strings.ToLower(getEnv("JOB_PROVIDER", JobsJooble)),
		JoobleAPIKey:     getEnv("JOOBLE_API_KEY", ""),
		JoobleHost:       getEnv("JOOBLE_HOST", "tr.jooble.org"),
		RapidAPIKey:      getEnv("RAPIDAPI_KEY", ""),
		AdzunaAppID:      getEnv("ADZUNA_APP_ID", ""),
		AdzunaAppKey:     getEnv("ADZUNA_APP_KEY", ""),
		AdzunaCountry:    getEnv("ADZUNA_COUNTRY", "us"),
		JobResults:       getEnvInt("JOB_RESULTS", 6),
		DefaultCity:      getEnv("DEFAULT_CITY", "Istanbul"),
		MaxFileSizeBytes: int64(getEnvInt("MAX_FILE_SIZE_BYTES", 5*1024*1024)),
		FontPath:         getEnv("FONT_PATH", "arial.ttf"),
		RateLimitRPS:     getEnvInt("RATE_LIMIT_RPS", 10),
		AllowedOrigins:   getEnvList("ALLOWED_ORIGINS", defaultOrigins),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case ProviderClaude:
		if c.ClaudeAPIKey == "" {
			return fmt.Errorf("CLAUDE_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.JobProvider {
	case JobsJooble:
		if c.JoobleAPIKey == "" {
			return fmt.Errorf("JOOBLE_API_KEY is required for JOB_PROVIDER=jooble")
		}
	case JobsJSearch:
		if c.RapidAPIKey == "" {
			return fmt.Errorf("RAPIDAPI_KEY is required for JOB_PROVIDER=jsearch")
		}
	case JobsAdzuna:
		if c.AdzunaAppID == "" || c.AdzunaAppKey == "" {
			return fmt.Errorf("ADZUNA_APP_ID and ADZUNA_APP_KEY are required for JOB_PROVIDER=adzuna")
		}
	case JobsRemotive, JobsNone:
	default:
		return fmt.Errorf("unknown JOB_PROVIDER %q", c.JobProvider)
	}

	if c.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_BYTES must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blanks
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
