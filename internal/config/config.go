package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Workshop WorkshopConfig
	Tracer   TracerConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// TracerConfig controls OpenTelemetry export. Tracing is off unless enabled.
type TracerConfig struct {
	Enabled     bool
	Endpoint    string // OTLP HTTP, host:port
	ServiceName string
}

// Session store kinds
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type WorkshopConfig struct {
	SessionStore     string        // "memory" or "redis"
	SessionTTL       time.Duration // idle live sessions are evicted after this
	AutosaveDebounce time.Duration
	AutosaveTopic    string
	EventStream      string // JetStream stream for domain events
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "default_secret"),
			AccessTokenTTL: getEnvAsDuration("JWT_ACCESS_TTL", 24*time.Hour),
		},
		Workshop: WorkshopConfig{
			SessionStore:     getEnv("SESSION_STORE", SessionStoreMemory),
			SessionTTL:       getEnvAsDuration("SESSION_TTL", 2*time.Hour),
			AutosaveDebounce: getEnvAsDuration("AUTOSAVE_DEBOUNCE", time.Second),
			AutosaveTopic:    getEnv("AUTOSAVE_TOPIC_NAME", "WORKSHOP_AUTOSAVE"),
			EventStream:      getEnv("NATS_EVENT_STREAM", "WORKSHOP_EVENTS"),
		},
		Tracer: TracerConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "workshop-wizard-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("1500ms", "2h") or plain seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds := getEnvAsInt(key, -1); seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
