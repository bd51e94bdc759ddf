package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string   // Empty selects the in-memory store
	RedisURL            string   // Empty disables caching
	PageSize            int      // Page size for user listing and search
	CacheTTLSeconds     int
	SeedFixtures        bool     // Seed an empty store at startup
	CORSOrigins         []string // Origins allowed to call the API from a browser
	RateLimitRPS        float64  // Rate limit for all API endpoints (requests per second)
	RateLimitBurst      int
	RateLimitWriteRPS   float64  // Rate limit for POST/PUT/DELETE (stricter)
	RateLimitWriteBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:                getEnv("PORT", "3000"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		PageSize:            getEnvInt("PAGE_SIZE", 50),
		CacheTTLSeconds:     getEnvInt("CACHE_TTL_SECONDS", 300),
		SeedFixtures:        getEnvBool("SEED_FIXTURES", true),
		CORSOrigins:         getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 40),
		RateLimitWriteRPS:   getEnvFloat("RATE_LIMIT_WRITE_RPS", 5),
		RateLimitWriteBurst: getEnvInt("RATE_LIMIT_WRITE_BURST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
