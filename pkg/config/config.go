package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Chat listing strategies for CHAT_ORDERING.
const (
	ChatOrderCreated = "created"
	ChatOrderRecent  = "recent"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	FirebaseStorageBucket   string
	PostgresUrl             string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	TokenTTL                time.Duration
	RedisAddr               string
	RateLimitPerMinute      int
	AMQPURL                 string
	AMQPQueue               string
	UploadDir               string
	PublicBaseURL           string
	ChatOrdering            string
	PromoteSchedule         string
	PromoteEnabled          bool
}

// Load reads configuration from the environment, loading .env first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	ordering := strings.ToLower(getEnv("CHAT_ORDERING", ChatOrderCreated))
	if ordering != ChatOrderRecent {
		ordering = ChatOrderCreated
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		PostgresUrl:             getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "faithconnect"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:                time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 10080)) * time.Minute,
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		AMQPURL:                 getEnv("AMQP_URL", ""),
		AMQPQueue:               getEnv("AMQP_QUEUE", "notifications"),
		UploadDir:               getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:           strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		ChatOrdering:            ordering,
		PromoteSchedule:         getEnv("PROMOTE_SCHEDULE", "@every 1m"),
		PromoteEnabled:          getEnvBool("PROMOTE_ENABLED", true),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
