package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	PGHost    string
	PGPort    int
	PGUser    string
	PGPass    string
	PGName    string
	PGSSLMode string

	JWTSecret string

	RedisAddr string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		PGHost:    getEnv("POSTGRES_HOST", "localhost"),
		PGPort:    getEnvInt("POSTGRES_PORT", 5432),
		PGUser:    getEnv("POSTGRES_USER", "shopcore"),
		PGPass:    getEnv("POSTGRES_PASSWORD", "shopcorepassword"),
		PGName:    getEnv("POSTGRES_DB", "shopcore_db"),
		PGSSLMode: getEnv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order-events"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
