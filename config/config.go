package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL    string        `envconfig:"DATABASE_URL"    required:"true"`
	MigrationsURL  string        `envconfig:"MIGRATIONS_URL"  default:"file://db/migrations"`
	HTTPPort       string        `envconfig:"HTTP_PORT"       default:":8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL"       default:"info"`
	RedisAddr      string        `envconfig:"REDIS_ADDR"      default:"localhost:6379"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"  default:""`
	RedisDB        int           `envconfig:"REDIS_DB"        default:"0"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL"     default:"24h"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, LogLevel=%s, SessionTTL=%s", config.HTTPPort, config.LogLevel, config.SessionTTL)
	})
	return &config
}
