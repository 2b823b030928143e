package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bolosign/bolosign/backend/go-services/pkg/logger"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Signing   SigningConfig
	JWT       JWTConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled bool
	// requests per second sustained, with Burst extra on top
	RPS   float64
	Burst int
}

// SigningConfig carries the knobs of the compositing pipeline: where
// source documents come from, where baked artifacts go, and the resource
// ceilings applied to each pass.
type SigningConfig struct {
	// OutputDir is where baked artifacts land when no object store is
	// configured. Served under /uploads.
	OutputDir string
	// BaseURL is the externally reachable root used to build artifact URLs.
	BaseURL string
	// DocumentRoot confines non-URL document references to a directory.
	DocumentRoot string
	FetchTimeout time.Duration

	MaxDocumentBytes int
	MaxImageBytes    int
	MaxFields        int
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("SIGNING_OUTPUT_DIR", "uploads")
	viper.SetDefault("SIGNING_BASE_URL", "http://localhost:5001")
	viper.SetDefault("SIGNING_DOCUMENT_ROOT", ".")
	viper.SetDefault("SIGNING_FETCH_TIMEOUT", 30)
	viper.SetDefault("SIGNING_MAX_DOCUMENT_BYTES", 50<<20)
	viper.SetDefault("SIGNING_MAX_IMAGE_BYTES", 10<<20)
	viper.SetDefault("SIGNING_MAX_FIELDS", 200)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 15)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled: viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   viper.GetInt("RATE_LIMIT_BURST"),
		},
		Signing: SigningConfig{
			OutputDir:        viper.GetString("SIGNING_OUTPUT_DIR"),
			BaseURL:          viper.GetString("SIGNING_BASE_URL"),
			DocumentRoot:     viper.GetString("SIGNING_DOCUMENT_ROOT"),
			FetchTimeout:     time.Duration(viper.GetInt("SIGNING_FETCH_TIMEOUT")) * time.Second,
			MaxDocumentBytes: viper.GetInt("SIGNING_MAX_DOCUMENT_BYTES"),
			MaxImageBytes:    viper.GetInt("SIGNING_MAX_IMAGE_BYTES"),
			MaxFields:        viper.GetInt("SIGNING_MAX_FIELDS"),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
	}

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set; API authentication is disabled")
	}

	return cfg, nil
}
