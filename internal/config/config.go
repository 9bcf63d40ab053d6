package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/robfig/cron/v3"
)

// Config представляет основную конфигурацию приложения Upstream News Analyzer.
// Содержит настройки сервера, логгера и бизнес-логики приложения.
type Config struct {
	Server ServerConfig `json:"server"`
	Logger LoggerConfig `json:"logger"`
	App    AppConfig    `json:"app"`
}

// ServerConfig содержит настройки HTTP-сервера приложения.
type ServerConfig struct {
	Address string `json:"address"`
}

// LoggerConfig содержит настройки системы логирования.
// Определяет уровень детализации логов (debug, info, warn, error).
type LoggerConfig struct {
	Level string `json:"level"`
}

// AppConfig содержит настройки бизнес-логики приложения.
// Включает адрес и имя анализируемой ленты, лимиты новостей
// и расписание обновления.
type AppConfig struct {
	FeedURL           string `json:"feed_url"`
	FeedName          string `json:"feed_name"`
	DefaultStoryLimit int    `json:"default_story_limit"`
	MaxStoryLimit     int    `json:"max_story_limit"`
	RefreshSchedule   string `json:"refresh_schedule"`
}

// Load загружает конфигурацию из JSON-файла по указанному пути.
// Возвращает ошибку если файл не существует, недоступен для чтения
// или содержит некорректный JSON. Для незаданных полей действуют
// значения по умолчанию.
func Load(configPath string) (*Config, error) {
	cfg := New()
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := json.Unmarshal(fileData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
	}
	return cfg, nil
}

// New создает новый экземпляр Config с значениями по умолчанию.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		App: AppConfig{
			FeedURL:           "https://services.upstreamonline.com/api/feed/rss",
			FeedName:          "Upstream",
			DefaultStoryLimit: 200,
			MaxStoryLimit:     200,
			RefreshSchedule:   "@every 3m",
		},
	}
}

// Validate проверяет корректность конфигурации.
// Проверяет URL ленты, лимиты новостей и расписание обновления.
// Возвращает ошибку с описанием первой найденной проблемы.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.App.FeedURL); err != nil {
		return fmt.Errorf("invalid app.feed_url: %s", c.App.FeedURL)
	}
	if c.App.FeedName == "" {
		return fmt.Errorf("app.feed_name must not be empty")
	}
	if c.App.DefaultStoryLimit <= 0 {
		return fmt.Errorf("app.default_story_limit must be a positive number")
	}
	if c.App.MaxStoryLimit < c.App.DefaultStoryLimit {
		return fmt.Errorf("app.max_story_limit must be >= app.default_story_limit")
	}
	if _, err := cron.ParseStandard(c.App.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid app.refresh_schedule: %w", err)
	}
	return nil
}
