package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Идентификаторы поддерживаемых TTS провайдеров
const (
	ProviderAWS    = "aws"
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Config содержит все конфигурационные параметры приложения
type Config struct {
	Telegram TelegramConfig
	TTS      TTSConfig
	Database DatabaseConfig
	App      AppConfig
}

// TelegramConfig содержит настройки Telegram бота
type TelegramConfig struct {
	BotToken string
}

// Enabled сообщает, нужно ли запускать бота
func (c *TelegramConfig) Enabled() bool {
	return c.BotToken != ""
}

// TTSConfig содержит настройки TTS провайдеров
type TTSConfig struct {
	Providers       []string
	Timeout         time.Duration
	DefaultProvider string
	DefaultVoice    string
	AWS             AWSConfig
	Google          GoogleConfig
	OpenAI          OpenAIConfig
}

// AWSConfig - ключи Amazon Polly
type AWSConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

type GoogleConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AppConfig struct {
	Env      string
	LogLevel string
	Port     int
}

// Load загружает конфигурацию из переменных окружения и .env
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Telegram
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	// TTS
	cfg.TTS.Providers = getEnvListDefault("TTS_PROVIDERS", []string{ProviderAWS, ProviderGoogle})
	cfg.TTS.Timeout = time.Duration(getEnvIntDefault("TTS_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.TTS.DefaultProvider = strings.ToLower(strings.TrimSpace(os.Getenv("DEFAULT_PROVIDER")))
	cfg.TTS.DefaultVoice = strings.TrimSpace(os.Getenv("DEFAULT_VOICE"))
	cfg.TTS.AWS.AccessKey = os.Getenv("AWS_ACCESS_KEY")
	cfg.TTS.AWS.SecretKey = os.Getenv("AWS_SECRET_KEY")
	cfg.TTS.AWS.Region = getEnvDefault("AWS_REGION", "ap-northeast-2")
	cfg.TTS.Google.APIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.TTS.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.TTS.OpenAI.Model = getEnvDefault("OPENAI_TTS_MODEL", "tts-1")

	// Database
	cfg.Database.Host = os.Getenv("DB_HOST")
	cfg.Database.Port = getEnvIntDefault("DB_PORT", 5432)
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")
	cfg.Database.SSLMode = getEnvDefault("DB_SSL_MODE", "disable")

	// App
	cfg.App.Env = getEnvDefault("APP_ENV", "development")
	cfg.App.LogLevel = getEnvDefault("LOG_LEVEL", "info")
	cfg.App.Port = getEnvIntDefault("APP_PORT", 8080)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvListDefault читает список через запятую, пустые элементы отбрасываются
func getEnvListDefault(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	var items []string
	for _, item := range strings.Split(v, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return def
	}
	return items
}

// validateConfig проверяет корректность конфигурации.
// Ключи провайдеров здесь не проверяются: их проверяют конструкторы адаптеров.
func validateConfig(config *Config) error {
	if len(config.TTS.Providers) == 0 {
		return fmt.Errorf("TTS_PROVIDERS не установлен")
	}

	seen := make(map[string]bool, len(config.TTS.Providers))
	for _, id := range config.TTS.Providers {
		switch id {
		case ProviderAWS, ProviderGoogle, ProviderOpenAI:
		default:
			return fmt.Errorf("неподдерживаемый TTS провайдер: %s. Поддерживаются: 'aws', 'google', 'openai'", id)
		}
		if seen[id] {
			return fmt.Errorf("провайдер %s указан в TTS_PROVIDERS дважды", id)
		}
		seen[id] = true
	}

	if config.TTS.DefaultProvider != "" && !seen[config.TTS.DefaultProvider] {
		return fmt.Errorf("DEFAULT_PROVIDER %s не входит в TTS_PROVIDERS", config.TTS.DefaultProvider)
	}
	if config.TTS.Timeout <= 0 {
		return fmt.Errorf("TTS_TIMEOUT_SECONDS должен быть положительным")
	}

	if config.Database.Enabled() {
		if config.Database.User == "" {
			return fmt.Errorf("DB_USER не установлен")
		}
		if config.Database.Name == "" {
			return fmt.Errorf("DB_NAME не установлен")
		}
	}

	return nil
}

// Enabled сообщает, настроена ли база данных
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// GetDSN возвращает URL подключения к базе данных.
// Логин и пароль экранируются, URL понимают и pgx, и lib/pq.
func (c *DatabaseConfig) GetDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// IsDevelopment проверяет, запущено ли приложение в режиме разработки
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction проверяет, запущено ли приложение в продакшн режиме
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// GetLogLevel возвращает уровень логирования в формате zap
func (c *AppConfig) GetLogLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
