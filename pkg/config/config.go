package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	DatabaseURL             string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	RateLimitPerSecond      float64
	RateLimitBurst          int
}

// Load reads configuration from the environment, after loading a .env file
// if one exists.
func Load() *Config {
	// A missing .env is fine: the environment may already be set.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		DatabaseURL:             getEnv("DATABASE_URL", "sqlite://recipebox.db"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "recipebox"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		RateLimitPerSecond:      getEnvFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:          getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

// IsProduction reports whether the service runs with ENV=production.
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
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}
