package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// External conversion service
	ConverterBaseURL string
	ConverterTimeout time.Duration

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseServiceKey     string
	SupabaseJWTSecret      string

	// Storage buckets
	UploadsBucket string
	ModelsBucket  string
	PostersBucket string

	// Poster fallback
	FallbackPosterURL string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("CONVERTER_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERTER_TIMEOUT: %w", err)
	}

	cfg := &Config{
		ConverterBaseURL: getEnv("CONVERTER_BASE_URL", "https://api.gltf.report/v2"),
		ConverterTimeout: timeout,

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),

		UploadsBucket: getEnv("UPLOADS_BUCKET", "uploads"),
		ModelsBucket:  getEnv("MODELS_BUCKET", "models"),
		PostersBucket: getEnv("POSTERS_BUCKET", "posters"),

		FallbackPosterURL: getEnv("FALLBACK_POSTER_URL", "https://modelviewer.dev/shared-assets/models/Astronaut.png"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.ConverterBaseURL == "" {
		return fmt.Errorf("CONVERTER_BASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
