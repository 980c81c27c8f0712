package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"auction-tracker/internal/notifier"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Migrate  bool   `mapstructure:"migrate"`
}

type NotifierConfig struct {
	Mode string `mapstructure:"mode"`
	From string `mapstructure:"from"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

var envBindings = map[string]string{
	"server.port":       "SERVER_PORT",
	"log.level":         "LOG_LEVEL",
	"store.driver":      "STORE_DRIVER",
	"postgres.host":     "DB_HOST",
	"postgres.port":     "DB_PORT",
	"postgres.user":     "DB_USER",
	"postgres.password": "DB_PASSWORD",
	"postgres.name":     "DB_NAME",
	"postgres.sslmode":  "DB_SSLMODE",
	"postgres.migrate":  "DB_MIGRATE",
	"notifier.mode":     "EMAIL_MODE",
	"notifier.from":     "EMAIL_FROM",
	"smtp.host":         "SMTP_HOST",
	"smtp.port":         "SMTP_PORT",
	"smtp.username":     "SMTP_USERNAME",
	"smtp.password":     "SMTP_PASSWORD",
	"scheduler.enabled": "SCHEDULER_ENABLED",
	"scheduler.spec":    "SCHEDULER_SPEC",
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "auction")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.name", "auction_tracker")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.migrate", true)
	v.SetDefault("notifier.mode", string(notifier.ModeDevelopment))
	v.SetDefault("notifier.from", "noreply@auction-tracker.local")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.spec", "@every 10s")

	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

// Load reads config.yaml from the usual locations, then environment variables
// (a .env file in the working directory is loaded first). A missing config file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/auction-tracker/")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile loads configuration from a specific file path, still honoring environment overrides
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}
	if _, err := notifier.ParseMode(c.Notifier.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ListenAddr is the address the HTTP server binds to
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

// DSN builds a postgres connection URL
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// NotifierSettings converts the notifier and smtp sections into notifier settings
func (c *Config) NotifierSettings() (notifier.Config, error) {
	mode, err := notifier.ParseMode(c.Notifier.Mode)
	if err != nil {
		return notifier.Config{}, err
	}
	return notifier.Config{
		Mode:     mode,
		From:     c.Notifier.From,
		SMTPHost: c.SMTP.Host,
		SMTPPort: c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
	}, nil
}

// String is safe to log; secrets are omitted
func (c *Config) String() string {
	return fmt.Sprintf(
		"Server: :%d, Store: %s, Postgres: %s@%s:%d/%s, Notifier: %s, Scheduler: %t (%s)",
		c.Server.Port,
		c.Store.Driver,
		c.Postgres.User, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name,
		c.Notifier.Mode,
		c.Scheduler.Enabled, c.Scheduler.Spec,
	)
}
