package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                  string
	DatabaseURL           string
	DBMaxOpenConns        int
	DBMaxIdleConns        int
	DBConnMaxLifetimeMin  int
	RedisURL              string
	RedisPassword         string
	JWTSecret             string
	FriendCacheTTL        time.Duration
	WaitingSessionMaxAge  time.Duration
	SnapshotRetentionDays int
}

func LoadConfig() *Config {
	return &Config{
		Port:                  GetEnv("PORT", "8080"),
		DatabaseURL:           GetEnv("DATABASE_URL", GetEnv("DB_URI", "")),
		DBMaxOpenConns:        GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:        GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin:  GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:              GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:         GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:             GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		FriendCacheTTL:        time.Duration(GetEnvAsInt("FRIEND_CACHE_TTL_SECONDS", 300)) * time.Second,
		WaitingSessionMaxAge:  time.Duration(GetEnvAsInt("WAITING_SESSION_MAX_AGE_HOURS", 24)) * time.Hour,
		SnapshotRetentionDays: GetEnvAsInt("SNAPSHOT_RETENTION_DAYS", 30),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
