package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string   `yaml:"env" env:"ENV" env-default:"local"`
	HTTP           HTTP     `yaml:"http"`
	Database       Database `yaml:"database"`
	Catalog        Catalog  `yaml:"catalog"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000"`
	OpenAIAPIKey   string   `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	GinMode         string        `yaml:"gin_mode" env:"GIN_MODE" env-default:"debug"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Database struct {
	Driver          string        `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"estimator"`
	Password        string        `yaml:"password" env:"DB_PASSWORD" env-default:"estimator"`
	Name            string        `yaml:"name" env:"DB_NAME" env-default:"project_manager_db"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath      string        `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"estimator.db"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

type Catalog struct {
	WorkbookPath string `yaml:"workbook_path" env:"CATALOG_PATH"`
	Sheet        string `yaml:"sheet" env:"CATALOG_SHEET" env-default:"Catálogo de Tarefas"`
}

// Load reads the file named by CONFIG_PATH when it is set, otherwise the
// environment alone. Environment variables override file values.
func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}
