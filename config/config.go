package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

type Config struct {
	GeocodingURL   string        `yaml:"geocodingUrl"`
	ForecastURL    string        `yaml:"forecastUrl"`
	HTTPTimeout    time.Duration `yaml:"httpTimeout"`
	RateLimitRPS   float64       `yaml:"rateLimitRps"`   // 0 отключает лимит
	RateLimitBurst int           `yaml:"rateLimitBurst"`
	ForecastDays   int           `yaml:"forecastDays"`
	ServerPort     string        `yaml:"serverPort"`
	LogLevel       string        `yaml:"logLevel"`
}

// Load собирает конфигурацию: .env, затем YAML файл, затем переменные окружения
func Load() (*Config, error) {
	// Загружаем .env файл если существует
	_ = godotenv.Load()

	cfg := Default()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}
	return cfg, nil
}

// Default значения по умолчанию для публичного Open-Meteo
func Default() *Config {
	return &Config{
		GeocodingURL:   "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:    "https://api.open-meteo.com/v1/forecast",
		HTTPTimeout:    10 * time.Second,
		RateLimitRPS:   5,
		RateLimitBurst: 5,
		ForecastDays:   7,
		ServerPort:     "8080",
		LogLevel:       "info",
	}
}

func (c *Config) Validate() error {
	if c.GeocodingURL == "" {
		return errors.New("geocodingUrl is required")
	}
	if c.ForecastURL == "" {
		return errors.New("forecastUrl is required")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("httpTimeout must not be negative")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("rateLimitRps must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return errors.New("rateLimitBurst must be at least 1 when rate limiting is enabled")
	}
	if c.ForecastDays < 1 || c.ForecastDays > 7 {
		return fmt.Errorf("forecastDays must be between 1 and 7, got %d", c.ForecastDays)
	}
	return nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("ошибка парсинга файла конфигурации: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.GeocodingURL = getEnv("GEOCODING_URL", cfg.GeocodingURL)
	cfg.ForecastURL = getEnv("FORECAST_URL", cfg.ForecastURL)
	cfg.HTTPTimeout = getEnvAsDuration("HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.RateLimitRPS = getEnvAsFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvAsInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.ForecastDays = getEnvAsInt("FORECAST_DAYS", cfg.ForecastDays)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
