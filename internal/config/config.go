package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress  string
	AllowedOrigins []string

	MongoURI          string
	MongoDB           string
	MongoTransactions bool

	FirebaseProjectID       string
	FirebaseCredentialsJSON string
	StorageBucket           string

	SessionSecret string
	SessionTTL    time.Duration
	RedisURL      string
}

func Load() *Config {
	if os.Getenv("ENV") == "dev" {
		if err := godotenv.Load(); err != nil {
			log.Printf("[config] no .env loaded: %v", err)
		}
	}

	return &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),

		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDB:           getEnv("MONGO_DB", "nada"),
		MongoTransactions: getEnvBool("MONGO_TRANSACTIONS", true),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		StorageBucket:           getEnv("STORAGE_BUCKET", ""),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 12*time.Hour),
		RedisURL:      getEnv("REDIS_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
