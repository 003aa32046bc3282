package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	LogLevel        string
	JWTSecret       string
	FrontendBaseURL string
	APIRateLimit    string

	CanonicalLanguage  domain.Language
	SupportedLanguages []domain.Language

	TranslatorAPIKey         string
	TranslatorTimeout        time.Duration
	TranslatorMaxConcurrency int
	TranslatorRateLimit      string

	RedisURL           string
	TranslationMemoTTL time.Duration

	RecalcWorkers       int
	RecalcNotifyChannel string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("API_RATE_LIMIT", "100-M")
	v.SetDefault("CANONICAL_LANGUAGE", string(domain.DefaultCanonicalLanguage))
	v.SetDefault("SUPPORTED_LANGUAGES", "en,vi,lo")
	v.SetDefault("TRANSLATOR_API_KEY", "")
	v.SetDefault("TRANSLATOR_TIMEOUT", "5s")
	v.SetDefault("TRANSLATOR_MAX_CONCURRENCY", 4)
	v.SetDefault("TRANSLATOR_RATE_LIMIT", "10-S")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("TRANSLATION_MEMO_TTL", "720h")
	v.SetDefault("RECALC_WORKERS", 8)
	v.SetDefault("RECALC_NOTIFY_CHANNEL", "exchange_rates_changed")
	v.AutomaticEnv()

	ctx := context.Background()
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		FrontendBaseURL:     v.GetString("FRONTEND_BASE_URL"),
		APIRateLimit:        v.GetString("API_RATE_LIMIT"),
		TranslatorAPIKey:    v.GetString("TRANSLATOR_API_KEY"),
		TranslatorRateLimit: v.GetString("TRANSLATOR_RATE_LIMIT"),
		RedisURL:            v.GetString("REDIS_URL"),
		RecalcNotifyChannel: v.GetString("RECALC_NOTIFY_CHANNEL"),
	}

	if cfg.DatabaseURL == "" {
		logger.Warn(ctx, "PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == insecureJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		logger.Warn(ctx, "JWT_SECRET not set, using default insecure key")
	}

	canonical, ok := domain.ParseLanguage(v.GetString("CANONICAL_LANGUAGE"))
	if !ok {
		return nil, fmt.Errorf("invalid CANONICAL_LANGUAGE %q", v.GetString("CANONICAL_LANGUAGE"))
	}
	cfg.CanonicalLanguage = canonical

	languages, err := parseLanguages(v.GetString("SUPPORTED_LANGUAGES"), canonical)
	if err != nil {
		return nil, err
	}
	cfg.SupportedLanguages = languages

	if cfg.TranslatorTimeout, err = parsePositiveDuration(v.GetString("TRANSLATOR_TIMEOUT"), "TRANSLATOR_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.TranslationMemoTTL, err = parsePositiveDuration(v.GetString("TRANSLATION_MEMO_TTL"), "TRANSLATION_MEMO_TTL"); err != nil {
		return nil, err
	}

	cfg.TranslatorMaxConcurrency = v.GetInt("TRANSLATOR_MAX_CONCURRENCY")
	if cfg.TranslatorMaxConcurrency < 1 {
		return nil, fmt.Errorf("TRANSLATOR_MAX_CONCURRENCY must be at least 1, got %d", cfg.TranslatorMaxConcurrency)
	}
	cfg.RecalcWorkers = v.GetInt("RECALC_WORKERS")
	if cfg.RecalcWorkers < 1 {
		return nil, fmt.Errorf("RECALC_WORKERS must be at least 1, got %d", cfg.RecalcWorkers)
	}

	if cfg.TranslatorAPIKey == "" {
		logger.Warn(ctx, "TRANSLATOR_API_KEY not set, translations will fall back to canonical text")
	}

	return cfg, nil
}

// parseLanguages reads a comma separated list of language codes. The canonical
// language is always part of the result, first.
func parseLanguages(raw string, canonical domain.Language) ([]domain.Language, error) {
	out := []domain.Language{canonical}
	seen := map[domain.Language]bool{canonical: true}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang, ok := domain.ParseLanguage(part)
		if !ok {
			return nil, fmt.Errorf("invalid language %q in SUPPORTED_LANGUAGES", part)
		}
		if !seen[lang] {
			seen[lang] = true
			out = append(out, lang)
		}
	}
	return out, nil
}

func parsePositiveDuration(raw, key string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
