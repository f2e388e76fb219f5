package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Стратегии хранения изображений
const (
	MediaStorageFilesystem = "filesystem"
	MediaStorageInline     = "inline"
)

// Режимы обработки изображений при редактировании перевала
const (
	ImageUpdateAppend  = "append"
	ImageUpdateReplace = "replace"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Media    MediaConfig
	Workflow WorkflowConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	BodyLimitMB  int
	AllowOrigins string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	Timeout  time.Duration
}

type CacheConfig struct {
	PerevalTTL time.Duration
}

type MediaConfig struct {
	Storage string
	Root    string
	URL     string
}

type WorkflowConfig struct {
	Atomic          bool
	ImageUpdateMode string
}

type LogConfig struct {
	Level  string
	Format string // json | console
}

// Load читает конфигурацию из .env в рабочей директории и переменных окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного env-файла. Отсутствие файла не ошибка:
// значения берутся из окружения и значений по умолчанию.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			BodyLimitMB:  v.GetInt("API_BODY_LIMIT_MB"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("FSTR_DB_HOST"),
			Port:            v.GetInt("FSTR_DB_PORT"),
			User:            v.GetString("FSTR_DB_LOGIN"),
			Password:        v.GetString("FSTR_DB_PASS"),
			DBName:          v.GetString("FSTR_DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			Path:            v.GetString("DB_PATH"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Timeout:  time.Duration(v.GetInt("REDIS_TIMEOUT")) * time.Second,
		},
		Cache: CacheConfig{
			PerevalTTL: time.Duration(v.GetInt("PEREVAL_CACHE_TTL")) * time.Second,
		},
		Media: MediaConfig{
			Storage: strings.ToLower(v.GetString("MEDIA_STORAGE")),
			Root:    v.GetString("MEDIA_ROOT"),
			URL:     v.GetString("MEDIA_URL"),
		},
		Workflow: WorkflowConfig{
			Atomic:          v.GetBool("SUBMIT_ATOMIC"),
			ImageUpdateMode: strings.ToLower(v.GetString("IMAGE_UPDATE_MODE")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_BODY_LIMIT_MB", 20)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("FSTR_DB_HOST", "localhost")
	v.SetDefault("FSTR_DB_PORT", 5432)
	v.SetDefault("FSTR_DB_NAME", "preval_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "pereval.db")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_TIMEOUT", 3)
	v.SetDefault("PEREVAL_CACHE_TTL", 300)

	v.SetDefault("MEDIA_STORAGE", MediaStorageFilesystem)
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MEDIA_URL", "/media/")

	v.SetDefault("SUBMIT_ATOMIC", true)
	v.SetDefault("IMAGE_UPDATE_MODE", ImageUpdateAppend)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "pgx", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Media.Storage {
	case MediaStorageFilesystem, MediaStorageInline:
	default:
		return fmt.Errorf("unsupported MEDIA_STORAGE %q", c.Media.Storage)
	}

	switch c.Workflow.ImageUpdateMode {
	case ImageUpdateAppend, ImageUpdateReplace:
	default:
		return fmt.Errorf("unsupported IMAGE_UPDATE_MODE %q", c.Workflow.ImageUpdateMode)
	}

	if !strings.HasSuffix(c.Media.URL, "/") {
		c.Media.URL += "/"
	}

	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN возвращает строку подключения для выбранного драйвера
func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - для sqlite путь к файлу, для PostgreSQL строка ключ=значение
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
