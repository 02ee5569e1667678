package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// envPrefix префикс переменных окружения, переопределяющих файл
const envPrefix = "RESERVATION_"

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logs        LogsConfig        `toml:"logs"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Reservation ReservationConfig `toml:"reservation"`
	Calendar    CalendarConfig    `toml:"calendar"`
	Metrics     MetricsConfig     `toml:"metrics"`
	CORS        CORSConfig        `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды жизни закэшированного месяца
}

type CatalogConfig struct {
	URL     string  `toml:"url"`
	Timeout int     `toml:"timeout"` // секунды
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type ReservationConfig struct {
	TTLSeconds       int    `toml:"ttl_seconds"`
	SweepSchedule    string `toml:"sweep_schedule"`
	RetentionSeconds int    `toml:"retention_seconds"`
	InstanceID       string `toml:"instance_id"` // пусто: имя хоста
}

type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

// Location часовой пояс, в котором определяется "сегодня"
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает конфигурацию из TOML файла
// Порядок: значения по умолчанию -> файл -> .env/окружение -> валидация
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// .env необязателен, но битый файл - ошибка
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if cfg.Reservation.InstanceID == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve instance id: %w", err)
		}
		cfg.Reservation.InstanceID = host
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  60,
		},
		Catalog: CatalogConfig{
			Timeout: 5,
			RPS:     20,
			Burst:   10,
		},
		Reservation: ReservationConfig{
			TTLSeconds:       300,
			SweepSchedule:    "@every 1m",
			RetentionSeconds: 600,
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation_engine",
		},
	}
}

type lookupFunc func(key string) (string, bool)

// applyEnv переопределяет значения из переменных окружения RESERVATION_*
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a number", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = n
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a bool", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = b
		return nil
	}

	str("LOG_LEVEL", &c.Logs.Level)
	str("DB_HOST", &c.Database.Host)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.DBName)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("CATALOG_URL", &c.Catalog.URL)
	str("TIMEZONE", &c.Calendar.Timezone)
	str("INSTANCE_ID", &c.Reservation.InstanceID)

	if v, ok := lookup(envPrefix + "CORS_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitList(v)
	}

	for _, err := range []error{
		num("HTTP_PORT", &c.Server.HTTPPort),
		num("DB_PORT", &c.Database.Port),
		num("TTL_SECONDS", &c.Reservation.TTLSeconds),
		flag("REDIS_ENABLED", &c.Redis.Enabled),
		flag("METRICS_ENABLED", &c.Metrics.Enabled),
	} {
		if err != nil {
			return err
		}
	}

	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Catalog.URL == "" {
		return fmt.Errorf("%w: catalog.url is required", ErrInvalidConfig)
	}
	if c.Catalog.RPS <= 0 || c.Catalog.Burst <= 0 {
		return fmt.Errorf("%w: catalog.rps and catalog.burst must be positive", ErrInvalidConfig)
	}
	// 0 означает значение по умолчанию
	if c.Reservation.TTLSeconds < 0 {
		return fmt.Errorf("%w: reservation.ttl_seconds=%d", ErrInvalidConfig, c.Reservation.TTLSeconds)
	}
	if c.Reservation.RetentionSeconds < 0 {
		return fmt.Errorf("%w: reservation.retention_seconds=%d", ErrInvalidConfig, c.Reservation.RetentionSeconds)
	}
	if c.Reservation.InstanceID == "" {
		return fmt.Errorf("%w: reservation.instance_id is required", ErrInvalidConfig)
	}
	if _, err := cron.ParseStandard(c.Reservation.SweepSchedule); err != nil {
		return fmt.Errorf("%w: reservation.sweep_schedule=%q: %v", ErrInvalidConfig, c.Reservation.SweepSchedule, err)
	}
	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: calendar.timezone=%q: %v", ErrInvalidConfig, c.Calendar.Timezone, err)
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("%w: redis.ttl must be positive", ErrInvalidConfig)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
