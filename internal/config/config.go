package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML-файла
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	Selections   SelectionsConfig   `toml:"selections"`
	Catalog      CollaboratorConfig `toml:"catalog_service"`
	Availability CollaboratorConfig `toml:"availability_service"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis-кеша пулов оборудования.
// Кешируется только состав пула по типу, никогда - результаты проверки доступности.
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	PoolCacheTTLSec int    `toml:"pool_cache_ttl_seconds"`
}

// SelectionsConfig настройки сессий выбора оборудования
type SelectionsConfig struct {
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`
	SweepSpec         string `toml:"sweep_spec"` // cron-выражение очистки истекших сессий
}

// CollaboratorConfig настройки внешнего сервиса-коллаборатора.
// Mode "local" - данные берутся из собственного хранилища,
// Mode "remote" - через HTTP-клиент по указанному URL.
type CollaboratorConfig struct {
	Mode    string `toml:"mode"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// IsRemote возвращает true, если коллаборатор вызывается по HTTP
func (c *CollaboratorConfig) IsRemote() bool {
	return c.Mode == "remote"
}

// Load загружает конфигурацию из TOML-файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.File == "" {
		c.Logs.File = "logs/app.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "ems-reservation-service"
	}
	if c.Redis.PoolCacheTTLSec == 0 {
		c.Redis.PoolCacheTTLSec = 60
	}
	if c.Selections.SessionTTLMinutes == 0 {
		c.Selections.SessionTTLMinutes = 30
	}
	if c.Selections.SweepSpec == "" {
		c.Selections.SweepSpec = "@every 1m"
	}
	if c.Catalog.Mode == "" {
		c.Catalog.Mode = "local"
	}
	if c.Availability.Mode == "" {
		c.Availability.Mode = "local"
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = 5
	}
	if c.Availability.Timeout == 0 {
		c.Availability.Timeout = 5
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return errors.New("config: database.host is required")
	}
	if c.Database.User == "" {
		return errors.New("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New("config: database.dbname is required")
	}
	if c.Catalog.IsRemote() && c.Catalog.URL == "" {
		return errors.New("config: catalog_service.url is required in remote mode")
	}
	if c.Availability.IsRemote() && c.Availability.URL == "" {
		return errors.New("config: availability_service.url is required in remote mode")
	}
	return nil
}
