package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TrustProxyHeaders bool   `mapstructure:"TRUST_PROXY_HEADERS"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Pre-visit booking reminders.
	ReminderLeadHours int `mapstructure:"REMINDER_LEAD_HOURS"`

	// Session lifecycle.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// MongoDB (restaurant catalog).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Booking API (ResDiary-style consumer API).
	BookingAPIBaseURL string `mapstructure:"BOOKING_API_BASE_URL"`
	BookingAPIToken   string `mapstructure:"BOOKING_API_TOKEN"`
	BookingAPISecret  string `mapstructure:"BOOKING_API_SECRET"`

	// Text-completion backends.
	OllamaBaseURL string `mapstructure:"OLLAMA_BASE_URL"`
	OllamaModel   string `mapstructure:"OLLAMA_MODEL"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`

	// Outbound call budget per turn, in seconds.
	TurnTimeoutSeconds int `mapstructure:"TURN_TIMEOUT_SECONDS"`
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
	viper.SetDefault("TRUST_PROXY_HEADERS", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "tablebooker")
	viper.SetDefault("BOOKING_API_BASE_URL", "http://localhost:8547")
	viper.SetDefault("BOOKING_API_TOKEN", "")
	viper.SetDefault("BOOKING_API_SECRET", "")
	viper.SetDefault("OLLAMA_BASE_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.1:8b")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("TURN_TIMEOUT_SECONDS", 30)

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

// SessionTTL returns the configured session time-to-live.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}

// TurnTimeout returns the outbound call budget for a single conversation turn.
func TurnTimeout() time.Duration {
	return time.Duration(AppConfig.TurnTimeoutSeconds) * time.Second
}

// ReminderLead returns how long before the visit a booking reminder fires.
func ReminderLead() time.Duration {
	return time.Duration(AppConfig.ReminderLeadHours) * time.Hour
}
