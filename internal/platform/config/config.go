package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	JWTSigningKey   string
	ShutdownTimeout time.Duration
	Redis           RedisConfig
	PostgresURL     string
}

// RedisConfig holds durable-tier connection settings. An empty URL means the
// durable tier falls back to process memory (development mode).
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SIRPO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("SIRPO_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		ShutdownTimeout: durationEnv("SIRPO_SHUTDOWN_TIMEOUT", 10*time.Second),
		PostgresURL:     os.Getenv("SIRPO_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("SIRPO_REDIS_URL"),
			PoolSize:     intEnv("SIRPO_REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("SIRPO_REDIS_MIN_IDLE", 2),
			DialTimeout:  durationEnv("SIRPO_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("SIRPO_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("SIRPO_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
