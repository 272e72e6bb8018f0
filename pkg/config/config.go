package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthProviderFirebase = "firebase"
	AuthProviderLocal    = "local"
)

type Config struct {
	ServerPort  string
	Environment string
	CORSOrigins []string

	FirebaseProject            string
	FirebaseApiKey             string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string

	AuthProvider string
	JWTSecret    string
	JWTExpiry    int64

	RedisAddr        string
	RedisPassword    string
	FeedbackCacheTTL time.Duration

	KafkaBrokers    []string
	KafkaOrderTopic string

	StrictOrderTransitions bool
	MaxUploadBytes         int64

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:             getEnv("FIREBASE_API_KEY", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),

		AuthProvider: strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderFirebase)),
		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:    getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		FeedbackCacheTTL: time.Duration(getEnvAsInt64("FEEDBACK_CACHE_TTL", 300)) * time.Second,

		KafkaBrokers:    getEnvAsList("KAFKA_BROKERS", nil),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "orders"),

		StrictOrderTransitions: getEnvAsBool("ORDER_STRICT_TRANSITIONS", false),
		MaxUploadBytes:         getEnvAsInt64("MAX_UPLOAD_BYTES", 5*1024*1024),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: int(getEnvAsInt64("RATE_LIMIT_BURST", 20)),
	}

	if config.AuthProvider != AuthProviderLocal {
		config.AuthProvider = AuthProviderFirebase
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
