// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"quickreply-editor/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Server содержит конфигурацию HTTP-сервера
type Server struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodySizeMB   int64         `json:"max_body_size_mb" yaml:"max_body_size_mb"`
}

// Userscript содержит настройки генерации скрипта
type Userscript struct {
	ExpectedPage     string `json:"expected_page" yaml:"expected_page"`
	DefaultDirectory string `json:"default_directory" yaml:"default_directory"`
	URLWildcard      string `json:"url_wildcard" yaml:"url_wildcard"`
	TemplatePath     string `json:"template_path" yaml:"template_path"` // пусто - встроенный шаблон
	DefaultLabel     string `json:"default_label" yaml:"default_label"`
	DefaultColor     string `json:"default_color" yaml:"default_color"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text, json
}

// Config содержит конфигурацию приложения
type Config struct {
	Server     Server           `json:"server" yaml:"server"`
	Userscript Userscript       `json:"userscript" yaml:"userscript"`
	Snippets   []domain.Snippet `json:"snippets" yaml:"snippets"` // пусто - встроенный каталог
	Logging    Logging          `json:"logging" yaml:"logging"`
}

// defaultConfig возвращает конфигурацию со значениями по умолчанию
func defaultConfig() *Config {
	return &Config{
		Server: Server{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxBodySizeMB:   DefaultMaxBodySizeMB,
		},
		Userscript: Userscript{
			ExpectedPage:     DefaultExpectedPage,
			DefaultDirectory: DefaultDirectory,
			URLWildcard:      DefaultURLWildcard,
			TemplatePath:     DefaultTemplatePath,
			DefaultLabel:     DefaultOptionLabel,
			DefaultColor:     DefaultOptionColor,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем config.yml,
// затем переменные окружения с префиксом QR_ (в том числе из .env файла).
func LoadConfig() (*Config, error) {
	// Отсутствие .env файла не является ошибкой
	_ = godotenv.Load()

	cfg := defaultConfig()

	path := getEnv(DefaultEnvPrefix+"CONFIG_FILE", DefaultConfigFile)
	if err := loadFromYAML(path, cfg); err != nil {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию из env: %w", err)
	}

	return cfg, nil
}

// loadFromYAML накладывает значения из YAML-файла на cfg. Отсутствующий файл не является ошибкой.
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("не удалось разобрать YAML конфигурацию: %w", err)
	}

	return nil
}

// loadFromEnv накладывает переменные окружения QR_* на cfg
func loadFromEnv(cfg *Config) error {
	strVars := map[string]*string{
		"SERVER_HOST":       &cfg.Server.Host,
		"EXPECTED_PAGE":     &cfg.Userscript.ExpectedPage,
		"DEFAULT_DIRECTORY": &cfg.Userscript.DefaultDirectory,
		"URL_WILDCARD":      &cfg.Userscript.URLWildcard,
		"TEMPLATE_PATH":     &cfg.Userscript.TemplatePath,
		"DEFAULT_LABEL":     &cfg.Userscript.DefaultLabel,
		"DEFAULT_COLOR":     &cfg.Userscript.DefaultColor,
		"LOG_LEVEL":         &cfg.Logging.Level,
		"LOG_FORMAT":        &cfg.Logging.Format,
	}
	for key, dst := range strVars {
		if value, ok := os.LookupEnv(DefaultEnvPrefix + key); ok {
			*dst = value
		}
	}

	if value, ok := os.LookupEnv(DefaultEnvPrefix + "SERVER_PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("недопустимый %sSERVER_PORT: %w", DefaultEnvPrefix, err)
		}
		cfg.Server.Port = port
	}

	if value, ok := os.LookupEnv(DefaultEnvPrefix + "SHUTDOWN_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("недопустимый %sSHUTDOWN_TIMEOUT: %w", DefaultEnvPrefix, err)
		}
		cfg.Server.ShutdownTimeout = timeout
	}

	return nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port должен быть действительным номером порта (1-65535)")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout должно быть положительным")
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("таймауты сервера должны быть неотрицательными")
	}

	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb должно быть положительным")
	}

	if c.Userscript.ExpectedPage == "" {
		return fmt.Errorf("userscript.expected_page не может быть пустым")
	}

	if c.Userscript.DefaultDirectory == "" {
		return fmt.Errorf("userscript.default_directory не может быть пустым")
	}

	if c.Userscript.DefaultLabel == "" {
		return fmt.Errorf("userscript.default_label не может быть пустым")
	}

	if !hexColorRe.MatchString(c.Userscript.DefaultColor) {
		return fmt.Errorf("userscript.default_color должен иметь вид #rrggbb")
	}

	for i, s := range c.Snippets {
		if s.Value == "" {
			return fmt.Errorf("snippets[%d].value не может быть пустым", i)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level должен быть одним из: debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format должен быть одним из: text, json")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
