// Package config loads client settings from a YAML file, the environment
// and command-line flags, in increasing order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/iudanet/marmitaria/internal/client/storage"
)

// EnvConfigPath задаёт путь к YAML, если нет --config
const EnvConfigPath = "MARMITA_CONFIG"

// Драйверы хранилища
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrUnknownLogFormat is returned for a log.format other than text or json
var ErrUnknownLogFormat = errors.New("unknown log format")

// Config корневая конфигурация клиента
type Config struct {
	Server   string        `yaml:"server" env:"MARMITA_SERVER" env-default:"http://localhost:8000/api"`
	Username string        `yaml:"username" env:"MARMITA_USERNAME"`
	Password string        `yaml:"password" env:"MARMITA_PASSWORD"`
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`
	Timeout  time.Duration `yaml:"timeout" env:"MARMITA_TIMEOUT" env-default:"30s"`
}

// StorageConfig описывает локальное хранилище сессии
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"MARMITA_STORAGE_DRIVER" env-default:"bolt"`
	Path       string `yaml:"path" env:"MARMITA_STORAGE_PATH" env-default:"marmita-client.db"`
	Passphrase string `yaml:"passphrase" env:"MARMITA_STORAGE_PASSPHRASE"`
}

// LogConfig описывает логирование
type LogConfig struct {
	Level  string `yaml:"level" env:"MARMITA_LOG_LEVEL" env-default:"warn"`
	Format string `yaml:"format" env:"MARMITA_LOG_FORMAT" env-default:"text"`
}

// Options результат разбора командной строки
type Options struct {
	Config      *Config
	Args        []string
	ShowVersion bool
}

// Parse разбирает флаги, читает YAML/ENV и накладывает явно заданные флаги поверх
func Parse(name string, args []string, output io.Writer) (*Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "Path to YAML config (env "+EnvConfigPath+")")
	showVersion := fs.Bool("version", false, "Show version information")
	server := fs.String("server", "", "Backend base URL")
	timeout := fs.Duration("timeout", 0, "HTTP timeout")
	driver := fs.String("driver", "", "Storage driver: bolt, sqlite, memory")
	dbPath := fs.String("db", "", "Path to local session database")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: text, json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &Options{ShowVersion: *showVersion, Args: fs.Args()}
	if opts.ShowVersion {
		return opts, nil
	}

	path := *configPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Флаги перекрывают файл и окружение только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.Server = *server
		case "timeout":
			cfg.Timeout = *timeout
		case "driver":
			cfg.Storage.Driver = *driver
		case "db":
			cfg.Storage.Path = *dbPath
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts.Config = cfg
	return opts, nil
}

// Load читает YAML (если путь задан) и накладывает переменные окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		// ReadConfig сам накладывает ENV поверх YAML
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return &cfg, nil
}

// Validate проверяет значения-перечисления
func (c *Config) Validate() error {
	c.Server = strings.TrimRight(strings.TrimSpace(c.Server), "/")
	if c.Server == "" {
		return errors.New("server URL is required")
	}

	switch c.Storage.Driver {
	case DriverBolt, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownDriver, c.Storage.Driver)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.Log.Format)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// SlogLevel переводит текстовый уровень в slog.Level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Usage describes the environment variables understood by the client
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
