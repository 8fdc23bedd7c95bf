package server

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config é resolvida do ambiente na subida do processo e imutável depois.
type Config struct {
	Host string
	Port int
	Env  string // "development" ou "production"

	AllowedOrigins []string

	RateLimitEnabled  bool
	RateLimitStrategy string // "window" (padrão) ou "bucket"
	RateLimitWindow   time.Duration
	RateLimitMax      int
	RateKeyHeader     string
	TrustXFF          bool
	AddRateHeaders    bool
	RetryAfter        time.Duration

	ConcurrencyMax     int
	ConcurrencyTimeout time.Duration

	StatsEnabled       bool
	StatsRedisAddr     string
	StatsRedisPassword string
	StatsRedisDB       int
	StatsPrefix        string
	StatsTTL           time.Duration
	StatsBucket        string
	StatsTrackKeys     bool
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func ReadConfig() (Config, error) {
	cfg := Config{}
	cfg.Host = getenvDefault("HOST", "127.0.0.1")
	cfg.Port = getenvIntDefault("PORT", 3000)
	cfg.Env = getenvDefault("APP_ENV", "development")
	cfg.AllowedOrigins = splitOrigins(os.Getenv("ALLOWED_ORIGINS"))

	cfg.RateLimitEnabled = getenvBoolDefault("RATE_LIMIT_ENABLED", true)
	cfg.RateLimitStrategy = getenvDefault("RATE_LIMIT_STRATEGY", "window")
	// janela em milissegundos, como o cliente costuma configurar
	windowMS := getenvIntDefault("RATE_LIMIT_WINDOW_MS", 900000)
	cfg.RateLimitWindow = time.Duration(windowMS) * time.Millisecond
	cfg.RateLimitMax = getenvIntDefault("RATE_LIMIT_MAX", 100)
	cfg.RateKeyHeader = os.Getenv("RATE_KEY_HEADER")
	cfg.TrustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.AddRateHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", true)
	cfg.RetryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)

	cfg.ConcurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 0)
	cfg.ConcurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.StatsEnabled = getenvBoolDefault("RATE_STATS_ENABLED", false)
	cfg.StatsRedisAddr = getenvDefault("RATE_STATS_REDIS_ADDR", "")
	cfg.StatsRedisPassword = os.Getenv("RATE_STATS_REDIS_PASSWORD")
	cfg.StatsRedisDB = getenvIntDefault("RATE_STATS_REDIS_DB", 0)
	cfg.StatsPrefix = getenvDefault("RATE_STATS_PREFIX", "greeting:ratelimit")
	cfg.StatsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.StatsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.StatsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("PORT must be between 1 and 65535")
	}
	if cfg.RateLimitEnabled {
		if cfg.RateLimitWindow <= 0 {
			return Config{}, errors.New("RATE_LIMIT_WINDOW_MS must be > 0")
		}
		if cfg.RateLimitMax <= 0 {
			return Config{}, errors.New("RATE_LIMIT_MAX must be > 0")
		}
	}
	if cfg.RateLimitStrategy != "window" && cfg.RateLimitStrategy != "bucket" {
		return Config{}, errors.New("RATE_LIMIT_STRATEGY must be \"window\" or \"bucket\"")
	}
	if cfg.ConcurrencyMax < 0 {
		return Config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	if cfg.StatsEnabled && strings.TrimSpace(cfg.StatsRedisAddr) == "" {
		return Config{}, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
	}
	return cfg, nil
}

func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
