package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
const EnvPrefix = "COURTS"

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Auth     AuthConfig     `toml:"auth"`
	Club     ClubConfig     `toml:"club"`
	Courts   []CourtConfig  `toml:"courts" ignored:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`   // секунды
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"` // секунды
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`   // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

type StorageConfig struct {
	// Driver postgres | sqlite | memory
	Driver string `toml:"driver"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTLHours int    `toml:"token_ttl_hours" envconfig:"TOKEN_TTL_HOURS"`

	// Администратор, создаваемый при старте, если его ещё нет
	AdminEmail     string `toml:"admin_email" envconfig:"ADMIN_EMAIL"`
	AdminPassword  string `toml:"admin_password" envconfig:"ADMIN_PASSWORD"`
	AdminFirstName string `toml:"admin_first_name" envconfig:"ADMIN_FIRST_NAME"`
	AdminLastName  string `toml:"admin_last_name" envconfig:"ADMIN_LAST_NAME"`
}

// TokenTTL время жизни токена
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type ClubConfig struct {
	// Timezone часовой пояс клуба, в нём определяется "сегодня"
	Timezone string `toml:"timezone"`
}

// Location часовой пояс клуба
func (c ClubConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type CourtConfig struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

// Default конфигурация по умолчанию: 4 корта, хранилище в памяти
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "court_booking",
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "courts",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		SQLite: SQLiteConfig{Path: "courts.db"},
		Auth: AuthConfig{
			TokenTTLHours:  24,
			AdminFirstName: "Club",
			AdminLastName:  "Admin",
		},
		Club: ClubConfig{Timezone: "Europe/Berlin"},
	}
	for _, c := range domain.DefaultCourts() {
		cfg.Courts = append(cfg.Courts, CourtConfig{ID: c.ID, Name: c.Name})
	}
	return cfg
}

// Load читает конфигурацию: значения по умолчанию → TOML-файл (если есть) → .env → переменные окружения COURTS_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileCfg := Default()
			fileCfg.Courts = nil
			if _, err := toml.DecodeFile(path, fileCfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
			if len(fileCfg.Courts) == 0 {
				fileCfg.Courts = cfg.Courts
			}
			cfg = fileCfg
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	// .env необязателен
	_ = godotenv.Load(".env")

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or %s_AUTH_JWT_SECRET)", ErrInvalidConfig, EnvPrefix)
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Auth.AdminEmail != "" && len(c.Auth.AdminPassword) < domain.MinPasswordLength {
		return fmt.Errorf("%w: auth.admin_password must be at least %d characters", ErrInvalidConfig, domain.MinPasswordLength)
	}

	if _, err := c.Club.Location(); err != nil {
		return fmt.Errorf("%w: club.timezone: %v", ErrInvalidConfig, err)
	}

	if len(c.Courts) == 0 {
		return fmt.Errorf("%w: at least one court is required", ErrInvalidConfig)
	}
	seen := make(map[int]bool, len(c.Courts))
	for _, court := range c.Courts {
		if court.ID <= 0 {
			return fmt.Errorf("%w: court id must be positive, got %d", ErrInvalidConfig, court.ID)
		}
		if seen[court.ID] {
			return fmt.Errorf("%w: duplicate court id %d", ErrInvalidConfig, court.ID)
		}
		seen[court.ID] = true
	}

	return nil
}

// CourtCatalog каталог кортов для домена
func (c *Config) CourtCatalog() *domain.Courts {
	courts := make([]domain.Court, 0, len(c.Courts))
	for _, court := range c.Courts {
		courts = append(courts, domain.Court{ID: court.ID, Name: court.Name})
	}
	return domain.NewCourts(courts)
}
