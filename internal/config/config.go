package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Message Gateway Config (SMS / звонки / email через внешний шлюз)
	GatewayURL        string        `env:"GATEWAY_URL"`
	GatewaySecret     string        `env:"GATEWAY_SECRET"`
	GatewayTimeout    time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"5s"`
	GatewayMaxRetries int           `env:"GATEWAY_MAX_RETRIES" envDefault:"3"`
	GatewayBaseDelay  time.Duration `env:"GATEWAY_BASE_DELAY" envDefault:"1s"`

	// Эскалация на экстренные службы
	AuthorityPhone        string        `env:"AUTHORITY_PHONE" envDefault:"112"`
	AuthorityDelay        time.Duration `env:"AUTHORITY_DELAY" envDefault:"30s"`
	AuthorityPollInterval time.Duration `env:"AUTHORITY_POLL_INTERVAL" envDefault:"1s"`

	// Параметры ядра
	DeviationThresholdMeters float64 `env:"DEVIATION_THRESHOLD_METERS" envDefault:"500"`
	ResponderMatchLimit      int     `env:"RESPONDER_MATCH_LIMIT" envDefault:"3"`
	NotifyConcurrency        int     `env:"NOTIFY_CONCURRENCY" envDefault:"8"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  getEnvAsInt("REDIS_DB", 0),
		GatewayURL:               os.Getenv("GATEWAY_URL"),
		GatewaySecret:            os.Getenv("GATEWAY_SECRET"),
		GatewayTimeout:           getEnvAsDuration("GATEWAY_TIMEOUT", 5*time.Second),
		GatewayMaxRetries:        getEnvAsInt("GATEWAY_MAX_RETRIES", 3),
		GatewayBaseDelay:         getEnvAsDuration("GATEWAY_BASE_DELAY", time.Second),
		AuthorityPhone:           getEnv("AUTHORITY_PHONE", "112"),
		AuthorityDelay:           getEnvAsDuration("AUTHORITY_DELAY", 30*time.Second),
		AuthorityPollInterval:    getEnvAsDuration("AUTHORITY_POLL_INTERVAL", time.Second),
		DeviationThresholdMeters: getEnvAsFloat("DEVIATION_THRESHOLD_METERS", 500),
		ResponderMatchLimit:      getEnvAsInt("RESPONDER_MATCH_LIMIT", 3),
		NotifyConcurrency:        getEnvAsInt("NOTIFY_CONCURRENCY", 8),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
