package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	TrustProxy      bool
}

// Load reads the environment, after merging in ENV_FILE (default ".env") when
// it exists. Variables already set in the process win over the file.
func Load() Config {
	file := env("ENV_FILE", ".env")
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("file", file).Msg("env file not loaded")
	}

	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		ShutdownTimeout: time.Duration(atoi("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		RateLimitRPS:    atof("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  atoi("RATE_LIMIT_BURST", 40),
		TrustProxy:      envBool("TRUST_PROXY", false),
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty; page cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer; using default")
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a number; using default")
	}
	return def
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}
