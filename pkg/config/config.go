package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                    string        `mapstructure:"PORT"`
	Env                     string        `mapstructure:"APP_ENV"`
	LogLevel                string        `mapstructure:"LOG_LEVEL"`
	MongoURL                string        `mapstructure:"MONGO_URL"`
	DBName                  string        `mapstructure:"DB_NAME"`
	MongoTimeout            time.Duration `mapstructure:"MONGO_TIMEOUT"`
	MongoTransactions       bool          `mapstructure:"MONGO_TRANSACTIONS"`
	JWTSecret               string        `mapstructure:"JWT_SECRET"`
	BcryptCost              int           `mapstructure:"BCRYPT_COST"`
	CORSOrigins             string        `mapstructure:"CORS_ORIGINS"`
	RedisURL                string        `mapstructure:"REDIS_URL"`
	TrendingCacheTTL        time.Duration `mapstructure:"TRENDING_CACHE_TTL"`
	AuthRateLimit           int           `mapstructure:"AUTH_RATE_LIMIT"`
	MetricsPort             string        `mapstructure:"METRICS_PORT"`
	MaxUploadBytes          int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	FirebaseCredentialsPath string        `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
}

var defaults = map[string]any{
	"PORT":                      "8080",
	"APP_ENV":                   "development",
	"LOG_LEVEL":                 "info",
	"MONGO_URL":                 "",
	"DB_NAME":                   "careerpulse_db",
	"MONGO_TIMEOUT":             "10s",
	"MONGO_TRANSACTIONS":        false,
	"JWT_SECRET":                "",
	"BCRYPT_COST":               10,
	"CORS_ORIGINS":              "*",
	"REDIS_URL":                 "",
	"TRENDING_CACHE_TTL":        "30s",
	"AUTH_RATE_LIMIT":           20,
	"METRICS_PORT":              "9090",
	"MAX_UPLOAD_BYTES":          5 << 20,
	"FIREBASE_CREDENTIALS_PATH": "",
}

// Load reads .env (if present) and the environment into a validated Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.MongoURL == "" {
		return errors.New("MONGO_URL is required")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.MongoTimeout <= 0 {
		return errors.New("MONGO_TIMEOUT must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
