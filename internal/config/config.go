// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "OFFICEHUB"
	DefaultConfigPath = "config.yml"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	Repository RepositoryConfig `yaml:"repository" mapstructure:"repository"`
	SQLite     SQLiteConfig     `yaml:"sqlite" mapstructure:"sqlite"`
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Worker     WorkerConfig     `yaml:"worker" mapstructure:"worker"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
}

type LoggingConfig struct {
	Development bool `yaml:"development" mapstructure:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type" mapstructure:"type"` // "inmemory", "sqlite" или "postgres"
}

type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url" mapstructure:"url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinConnections int           `yaml:"min_connections" mapstructure:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

type WorkerConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

type AuthConfig struct {
	// заглушка: единый пароль для всех пользователей
	SentinelPassword string `yaml:"sentinel_password" mapstructure:"sentinel_password"`
}

const (
	RepositoryInMemory = "inmemory"
	RepositorySQLite   = "sqlite"
	RepositoryPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.development", true)
	v.SetDefault("repository.type", RepositorySQLite)
	v.SetDefault("sqlite.path", "officehub.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)
	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.interval", 5*time.Minute)
	v.SetDefault("auth.sentinel_password", "password")
}

// Path возвращает путь к конфигу из OFFICEHUB_CONFIG либо путь по умолчанию.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// Load читает YAML-конфиг через viper. Отсутствующий файл не ошибка:
// используются значения по умолчанию и переменные окружения OFFICEHUB_*.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфига %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositoryInMemory:
	case RepositorySQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path не задан")
		}
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url не задан для repository.type=postgres")
		}
	default:
		return fmt.Errorf("неизвестный repository.type %q", c.Repository.Type)
	}
	if c.Worker.Enabled && c.Worker.Interval <= 0 {
		return fmt.Errorf("worker.interval должен быть положительным")
	}
	return nil
}
