package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Collaborator service endpoints.
	ProfileServiceURL   string `mapstructure:"PROFILE_SERVICE_URL"`
	GeneratorServiceURL string `mapstructure:"GENERATOR_SERVICE_URL"`

	// Planner tunables.
	PlannerDebounceMs    int `mapstructure:"PLANNER_DEBOUNCE_MS"`
	PlannerSessionTTLMin int `mapstructure:"PLANNER_SESSION_TTL_MIN"`
	GeneratorTimeoutSec  int `mapstructure:"GENERATOR_TIMEOUT_SEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("PROFILE_SERVICE_URL", "http://localhost:8001")
	viper.SetDefault("GENERATOR_SERVICE_URL", "http://localhost:8002")
	viper.SetDefault("PLANNER_DEBOUNCE_MS", 400)
	viper.SetDefault("PLANNER_SESSION_TTL_MIN", 30)
	viper.SetDefault("GENERATOR_TIMEOUT_SEC", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// DebounceInterval returns the type-ahead debounce delay.
func DebounceInterval() time.Duration {
	return time.Duration(AppConfig.PlannerDebounceMs) * time.Millisecond
}

// SessionTTL returns how long an idle planning session is kept alive.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.PlannerSessionTTLMin) * time.Minute
}

// GeneratorTimeout returns the deadline applied to one generation request.
func GeneratorTimeout() time.Duration {
	return time.Duration(AppConfig.GeneratorTimeoutSec) * time.Second
}
