package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	// JWTSecret signs bearer tokens. Injected here once at startup and passed
	// to the token issuer; never read from the environment at call time and
	// never logged.
	JWTSecret string
	// GoogleCredentialsFile points at a Firebase service account key. Empty
	// means Google login is disabled.
	GoogleCredentialsFile string
	// GoogleAutoProvision controls whether a first Google login creates a
	// user record implicitly.
	GoogleAutoProvision bool
	SwaggerHost         string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "5000"),
		MySQLDSN:              getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/inventory?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		JWTSecret:             getEnv("JWT_SECRET", "change-me"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		GoogleAutoProvision:   getEnvBool("GOOGLE_AUTO_PROVISION", true),
		SwaggerHost:           os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
