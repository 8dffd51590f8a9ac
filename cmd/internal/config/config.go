package config

import (
	"os"
	"strconv"
)

// Config holds application configuration, read once from the
// environment at startup.
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  string
	EnableCORS bool
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "6060"),
		DBPath:     getEnv("DB_PATH", "./daybook.db"),
		JWTSecret:  getEnv("API_JWT_SECRET", ""),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
