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
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"

	GeocoderYandex = "yandex"
	GeocoderORS    = "ors"
)

// Config holds the runtime configuration, read from environment variables.
type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	DatabaseURL    string
	AllowedOrigins []string
	RankWorkers    int
	SeedPath       string

	Geocoder GeocoderConfig
	Cache    CacheConfig
}

type GeocoderConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	RPS         float64
	Burst       int
}

type CacheConfig struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           Get("PORT", "8080"),
		Environment:    Get("ENVIRONMENT", "production"),
		LogLevel:       Get("LOG_LEVEL", "info"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		AllowedOrigins: GetSlice("ALLOWED_ORIGINS", []string{"*"}),
		RankWorkers:    GetInt("RANK_WORKERS", 8),
		SeedPath:       Get("SEED_PATH", "data/seeds/menu.json"),
		Geocoder: GeocoderConfig{
			Provider:    strings.ToLower(Get("GEOCODER_PROVIDER", GeocoderYandex)),
			APIKey:      Get("GEOCODER_API_KEY", ""),
			BaseURL:     Get("GEOCODER_BASE_URL", ""),
			Timeout:     GetDuration("GEOCODER_TIMEOUT", 10*time.Second),
			MaxAttempts: GetInt("GEOCODER_MAX_ATTEMPTS", 1),
			RPS:         GetFloat("GEOCODER_RPS", 10),
			Burst:       GetInt("GEOCODER_BURST", 5),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(Get("CACHE_BACKEND", CacheBackendMemory)),
			TTL:           GetDuration("CACHE_TTL", 600*time.Second),
			SweepInterval: GetDuration("CACHE_SWEEP_INTERVAL", 0),
			RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
			RedisPassword: Get("REDIS_PASSWORD", ""),
			RedisDB:       GetInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if strings.TrimSpace(c.Geocoder.APIKey) == "" {
		errs = append(errs, errors.New("GEOCODER_API_KEY is required"))
	}
	switch c.Geocoder.Provider {
	case GeocoderYandex, GeocoderORS:
	default:
		errs = append(errs, fmt.Errorf("GEOCODER_PROVIDER must be %q or %q, got %q", GeocoderYandex, GeocoderORS, c.Geocoder.Provider))
	}
	if c.Geocoder.Timeout <= 0 {
		errs = append(errs, errors.New("GEOCODER_TIMEOUT must be positive"))
	}
	if c.Geocoder.MaxAttempts < 1 {
		errs = append(errs, errors.New("GEOCODER_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Geocoder.RPS <= 0 || c.Geocoder.Burst < 1 {
		errs = append(errs, errors.New("GEOCODER_RPS must be positive and GEOCODER_BURST at least 1"))
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be one of memory, redis, postgres, got %q", c.Cache.Backend))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive"))
	}
	if c.RankWorkers < 1 || c.RankWorkers > 64 {
		errs = append(errs, errors.New("RANK_WORKERS must be between 1 and 64"))
	}

	return errors.Join(errs...)
}

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(Get(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

// GetDuration accepts Go duration strings ("10m") or plain seconds ("600").
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// GetSlice splits a comma separated value, dropping empty items.
func GetSlice(key string, fallback []string) []string {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}

	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
