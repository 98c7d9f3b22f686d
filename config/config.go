package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DRIVER_MYSQL = "mysql"
const DRIVER_SQLITE = "sqlite"

// Config is the process configuration, read from the environment.  The MySQL variable names match the ones the
// deployment scripts already set.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":5555" validate:"required"`

	DBDriver      string `env:"DB_DRIVER" envDefault:"mysql" validate:"oneof=mysql sqlite"`
	MysqlUser     string `env:"MYSQL_USER"`
	MysqlPassword string `env:"MYSQL_PASSWORD"`
	MysqlProtocol string `env:"MYSQL_PROTOCOL" envDefault:"tcp"`
	MysqlHost     string `env:"MYSQL_HOST" envDefault:"127.0.0.1"`
	MysqlPort     string `env:"MYSQL_PORT" envDefault:"3306"`
	MysqlDBName   string `env:"MYSQL_DBNAME" validate:"required_if=DBDriver mysql"`
	SqlitePath    string `env:"SQLITE_PATH" envDefault:"volunteer.db" validate:"required_if=DBDriver sqlite"`

	SessionExpiry       time.Duration `env:"SESSION_EXPIRY" envDefault:"24h" validate:"gt=0"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
	SentryDSN      string `env:"SENTRY_DSN"`

	CorsOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

var validate = validator.New()

// Load reads an optional .env file from the working directory and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return Parse()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// MysqlDSN returns the DSN for go-sql-driver/mysql.
func (c *Config) MysqlDSN() string {
	return fmt.Sprintf(
		"%s:%s@%s(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&interpolateParams=true",
		c.MysqlUser,
		c.MysqlPassword,
		c.MysqlProtocol,
		c.MysqlHost,
		c.MysqlPort,
		c.MysqlDBName,
	)
}
