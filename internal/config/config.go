package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all environment-sourced settings for the KiotViet reporting service.
type Config struct {
	// KiotViet API credentials
	Retailer     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string

	// App settings
	Debug        bool
	CacheEnabled bool
	LogLevel     string
	Port         string
	RedisAddr    string
}

const (
	defaultBaseURL  = "https://public.kiotapi.com"
	defaultAuthURL  = "https://id.kiotviet.vn/connect/token"
	defaultLogLevel = "INFO"
	defaultPort     = "8080"
)

// Load reads configuration from environment variables and validates
// that the required KiotViet credentials are present.
func Load() (*Config, error) {
	cfg := &Config{
		Retailer:     os.Getenv("KIOTVIET_RETAILER"),
		ClientID:     os.Getenv("KIOTVIET_CLIENT_ID"),
		ClientSecret: os.Getenv("KIOTVIET_CLIENT_SECRET"),
		BaseURL:      getEnv("KIOTVIET_BASE_URL", defaultBaseURL),
		AuthURL:      getEnv("KIOTVIET_AUTH_URL", defaultAuthURL),
		Debug:        getBoolEnv("DEBUG", false),
		CacheEnabled: getBoolEnv("CACHE_ENABLED", true),
		LogLevel:     getEnv("LOG_LEVEL", defaultLogLevel),
		Port:         getEnv("PORT", defaultPort),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
	}

	var missing []string
	if cfg.Retailer == "" {
		missing = append(missing, "KIOTVIET_RETAILER")
	}
	if cfg.ClientID == "" {
		missing = append(missing, "KIOTVIET_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, "KIOTVIET_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.ToLower(v) == "true"
}
