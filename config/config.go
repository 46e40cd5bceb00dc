// Package config loads and validates the process configuration from
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort        = "8011"
	defaultLogLevel    = "INFO"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOpenAIBase  = "https://api.openai.com/v1"
	defaultRedisURL    = "redis://localhost:6379"
	defaultSessionTTL  = 3600
	defaultCORSOrigins = "http://localhost:3000"
	defaultVoice       = "luna"
)

type Config struct {
	Port     string
	LogLevel string

	DeepgramAPIKey string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string

	RedisURL   string
	SessionTTL time.Duration

	CORSOrigins []string
	Voice       string
}

// Load reads the configuration from the environment. Every missing or
// invalid value is reported; the error joins all of them so a broken
// deployment surfaces everything at once.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           envOrDefault("PORT", defaultPort),
		LogLevel:       envOrDefault("LOG_LEVEL", defaultLogLevel),
		DeepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", defaultOpenAIModel),
		OpenAIBaseURL:  envOrDefault("OPENAI_BASE_URL", defaultOpenAIBase),
		RedisURL:       envOrDefault("REDIS_URL", defaultRedisURL),
		Voice:          envOrDefault("LIRA_VOICE", defaultVoice),
	}

	var errs []error

	if cfg.DeepgramAPIKey == "" {
		errs = append(errs, fmt.Errorf("DEEPGRAM_API_KEY is required"))
	}
	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, fmt.Errorf("OPENAI_API_KEY is required"))
	}

	ttlSeconds := defaultSessionTTL
	if raw, ok := os.LookupEnv("SESSION_TTL_SECONDS"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errs = append(errs, fmt.Errorf("SESSION_TTL_SECONDS must be a positive integer, got %q", raw))
		} else {
			ttlSeconds = parsed
		}
	}
	cfg.SessionTTL = time.Duration(ttlSeconds) * time.Second

	for _, origin := range strings.Split(envOrDefault("CORS_ORIGINS", defaultCORSOrigins), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		errs = append(errs, fmt.Errorf("CORS_ORIGINS must name at least one origin"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
