package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/finsearch/pkg/config"
	"github.com/utafrali/finsearch/pkg/database"
)

// Config holds all configuration for the finsearch service.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"finsearch"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8086"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"finsearch"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"finsearch_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"finsearch"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis settings cache
	RedisHost        string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort        int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	SettingsCacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"5m"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"finsearch"`

	// External search service
	FindologicBaseURL string        `env:"FINDOLOGIC_BASE_URL" envDefault:"https://service.findologic.com/ps"`
	FindologicTimeout time.Duration `env:"FINDOLOGIC_TIMEOUT" envDefault:"10s"`

	// Export behavior
	BaseCategoryID int64 `env:"BASE_CATEGORY_ID" envDefault:"1"`
	HideNoInStock  bool  `env:"HIDE_NO_IN_STOCK" envDefault:"false"`
	DefaultShopID  int64 `env:"DEFAULT_SHOP_ID" envDefault:"1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load finsearch config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.BaseCategoryID < 1 {
		return fmt.Errorf("invalid base category: %d", c.BaseCategoryID)
	}
	if c.FindologicBaseURL == "" {
		return fmt.Errorf("findologic base URL must not be empty")
	}
	return nil
}

// PostgresConfig builds the connection pool configuration.
func (c *Config) PostgresConfig() database.PostgresConfig {
	cfg := database.DefaultPostgresConfig()
	cfg.Host = c.PostgresHost
	cfg.Port = c.PostgresPort
	cfg.User = c.PostgresUser
	cfg.Password = c.PostgresPassword
	cfg.DBName = c.PostgresDB
	cfg.SSLMode = c.PostgresSSLMode
	return cfg
}

// RedisConfig builds the Redis client configuration.
func (c *Config) RedisConfig() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
