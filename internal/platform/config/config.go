// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// HTTPConfig holds the HTTP listener settings.
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" env-default:":8080"`
}

// DBConfig holds the relational database settings.
// Driver selects between "postgres" and "sqlite".
type DBConfig struct {
	Driver        string        `env:"DB_DRIVER" env-default:"postgres"`
	Host          string        `env:"DB_HOST" env-default:"localhost"`
	Port          string        `env:"DB_PORT" env-default:"5432"`
	User          string        `env:"DB_USER"`
	Password      string        `env:"DB_PASSWORD"`
	Name          string        `env:"DB_NAME" env-default:"accounts"`
	SSLMode       string        `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath    string        `env:"SQLITE_PATH" env-default:"./accounts.db"`
	RunMigrations bool          `env:"RUN_MIGRATIONS" env-default:"true"`
	ConnTimeout   time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"60s"`
}

// RedisConfig holds the Redis connection settings. An empty Host disables Redis.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Addr returns the host:port pair for the Redis client.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Expiration time.Duration `env:"JWT_EXPIRATION" env-default:"60m"`
}

// AccountConfig holds the account lifecycle policy.
type AccountConfig struct {
	VerificationCodeTTL    time.Duration `env:"VERIFICATION_CODE_TTL" env-default:"15m"`
	VerificationResendTTL  time.Duration `env:"VERIFICATION_RESEND_TTL" env-default:"1h"`
	PasswordChangeLimit    int           `env:"PASSWORD_CHANGE_LIMIT" env-default:"1"`
	MaxSessionsPerUser     int           `env:"MAX_SESSIONS_PER_USER" env-default:"5"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" env-default:"1h"`
}

// SMTPConfig holds outgoing mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" env-default:"no-reply@localhost"`
}

// AdminConfig is the identity of the default administrator seeded at startup.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL" env-default:"admin@gmail.com"`
	Username string `env:"ADMIN_USERNAME" env-default:"admin"`
	Password string `env:"ADMIN_PASSWORD" env-default:"admin1234"`
	Phone    string `env:"ADMIN_PHONE" env-default:"+994501234567"`
}

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" env-default:"info"`
	Encoding string `env:"LOG_ENCODING" env-default:"json"`
}

// Config is the root configuration of the service.
type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Account AccountConfig
	SMTP    SMTPConfig
	Admin   AdminConfig
	Logger  LoggerConfig
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Account.PasswordChangeLimit < 0 {
		return fmt.Errorf("PASSWORD_CHANGE_LIMIT must not be negative")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	return nil
}
