// Файл: pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

// APIConfig описывает удалённый REST API системы отчётности.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey  string
	SessionTTL time.Duration
}

type CookieConfig struct {
	FlashSecret string
	Secure      bool
}

type ListConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DashboardConfig — время жизни закешированных счётчиков на главной.
type DashboardConfig struct {
	CountTTL time.Duration
}

type Config struct {
	Server          ServerConfig
	API             APIConfig
	Postgres        PostgresConfig
	Redis           RedisConfig
	JWT             JWTConfig
	Cookie          CookieConfig
	List            ListConfig
	Dashboard       DashboardConfig
	PermissionsFile string
	LogLevel        string
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000/api"),
			Timeout: getDuration("API_TIMEOUT", 20*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "change-me-ereport-admin-secret"),
			SessionTTL: getDuration("SESSION_TTL", 12*time.Hour),
		},
		Cookie: CookieConfig{
			FlashSecret: getEnv("FLASH_SECRET", "change-me-ereport-flash-secret"),
			Secure:      getBool("COOKIE_SECURE", false),
		},
		List: ListConfig{
			DefaultPageSize: getInt("DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getInt("MAX_PAGE_SIZE", 100),
		},
		Dashboard: DashboardConfig{
			CountTTL: getDuration("DASHBOARD_COUNT_TTL", time.Minute),
		},
		PermissionsFile: getEnv("PERMISSIONS_FILE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Предупреждение: некорректное значение %s=%q, используется %d", key, value, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration принимает как "30s", так и число секунд.
func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Printf("Предупреждение: некорректное значение %s=%q, используется %s", key, value, fallback)
	return fallback
}
