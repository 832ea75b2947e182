package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Драйверы хранилища и сессий
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
	SessionRedis    = "redis"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Session    SessionConfig
	Pagination PaginationConfig
	Storage    StorageConfig
	Migrations MigrationsConfig
	CORS       CORSConfig
	Logger     LoggerConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig содержит настройки JWT аутентификации
type JWTConfig struct {
	SecretKey     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SessionConfig содержит настройки серверных сессий
type SessionConfig struct {
	// Driver - redis или memory
	Driver    string
	KeyPrefix string
	TTL       time.Duration
}

// PaginationConfig содержит настройки постраничного вывода
type PaginationConfig struct {
	PageSize int
}

// StorageConfig выбирает реализацию репозиториев
type StorageConfig struct {
	Driver string // postgres или memory
}

// MigrationsConfig содержит настройки миграций
type MigrationsConfig struct {
	Path    string
	Enabled bool
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// LoggerConfig содержит настройки логирования
type LoggerConfig struct {
	Level  string
	Format string // json или console
	Output string // stdout или путь к файлу
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	refreshExpiry := cast.ToDuration(getOrReturnDefault("JWT_REFRESH_EXPIRY", 7*24*time.Hour))

	cfg := &Config{
		Server: ServerConfig{
			Host:            cast.ToString(getOrReturnDefault("SERVER_HOST", "0.0.0.0")),
			Port:            cast.ToString(getOrReturnDefault("SERVER_PORT", "8080")),
			ReadTimeout:     cast.ToDuration(getOrReturnDefault("SERVER_READ_TIMEOUT", 15*time.Second)),
			WriteTimeout:    cast.ToDuration(getOrReturnDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)),
			IdleTimeout:     cast.ToDuration(getOrReturnDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)),
			ShutdownTimeout: cast.ToDuration(getOrReturnDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)),
		},
		Database: DatabaseConfig{
			Host:            cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
			Port:            cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
			User:            cast.ToString(getOrReturnDefault("DB_USER", "taxi_user")),
			Password:        cast.ToString(getOrReturnDefault("DB_PASSWORD", "taxi_password")),
			Database:        cast.ToString(getOrReturnDefault("DB_NAME", "taxi_db")),
			SSLMode:         cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
			MaxOpenConns:    cast.ToInt(getOrReturnDefault("DB_MAX_OPEN_CONNS", 25)),
			MaxIdleConns:    cast.ToInt(getOrReturnDefault("DB_MAX_IDLE_CONNS", 5)),
			ConnMaxLifetime: cast.ToDuration(getOrReturnDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)),
		},
		Redis: RedisConfig{
			Host:     cast.ToString(getOrReturnDefault("REDIS_HOST", "localhost")),
			Port:     cast.ToString(getOrReturnDefault("REDIS_PORT", "6379")),
			Password: cast.ToString(getOrReturnDefault("REDIS_PASSWORD", "")),
			DB:       cast.ToInt(getOrReturnDefault("REDIS_DB", 0)),
		},
		JWT: JWTConfig{
			SecretKey:     cast.ToString(getOrReturnDefault("JWT_SECRET", "your-secret-key-change-this-in-production")),
			AccessExpiry:  cast.ToDuration(getOrReturnDefault("JWT_ACCESS_EXPIRY", 15*time.Minute)),
			RefreshExpiry: refreshExpiry,
		},
		Session: SessionConfig{
			Driver:    strings.ToLower(cast.ToString(getOrReturnDefault("SESSION_DRIVER", SessionRedis))),
			KeyPrefix: cast.ToString(getOrReturnDefault("SESSION_KEY_PREFIX", "session:")),
			// Сессия живет столько же, сколько refresh токен
			TTL: cast.ToDuration(getOrReturnDefault("SESSION_TTL", refreshExpiry)),
		},
		Pagination: PaginationConfig{
			PageSize: cast.ToInt(getOrReturnDefault("PAGE_SIZE", 5)),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(cast.ToString(getOrReturnDefault("STORAGE_DRIVER", StoragePostgres))),
		},
		Migrations: MigrationsConfig{
			Path:    cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations")),
			Enabled: cast.ToBool(getOrReturnDefault("MIGRATIONS_ENABLED", true)),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(cast.ToString(getOrReturnDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"))),
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		},
		Logger: LoggerConfig{
			Level:  cast.ToString(getOrReturnDefault("LOG_LEVEL", "info")),
			Format: cast.ToString(getOrReturnDefault("LOG_FORMAT", "json")),
			Output: cast.ToString(getOrReturnDefault("LOG_OUTPUT", "stdout")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.Session.Driver {
	case SessionRedis, StorageMemory:
	default:
		return fmt.Errorf("unknown SESSION_DRIVER %q", c.Session.Driver)
	}
	if c.Pagination.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Pagination.PageSize)
	}
	return nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL возвращает строку подключения в формате URL (pgxpool, golang-migrate)
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Address возвращает адрес сервера
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Address возвращает адрес Redis
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
