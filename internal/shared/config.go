package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	BackendBase string
	BackendRPS  int
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		BackendBase: strings.TrimRight(env("BACKEND_BASE_URL", "http://localhost:8000/api"), "/"),
		BackendRPS:  atoi("BACKEND_RPS", 20),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		SessionTTL:  time.Duration(atoi("SESSION_TTL_SECONDS", 3600)) * time.Second,
		RememberTTL: time.Duration(atoi("REMEMBER_TTL_SECONDS", 14*24*3600)) * time.Second,
	}
	if c.BackendBase == "" {
		log.Warn().Msg("BACKEND_BASE_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
