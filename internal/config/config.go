package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Messaging MessagingConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int    `envconfig:"APP_PORT" default:"8080"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" default:"planning_service"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// JWTConfig holds the verification key for tokens issued by the identity
// service. This service only verifies tokens; it never issues them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET_KEY" required:"true"`
}

// MessagingConfig holds the queue URLs for cross-service coordination.
// Queues without a URL are disabled; the publisher logs and drops instead.
type MessagingConfig struct {
	Region                       string `envconfig:"AWS_REGION" default:"eu-west-1"`
	ExchangeApprovalQueueURL     string `envconfig:"QUEUE_SHIFT_EXCHANGE_APPROVAL"`
	ExchangeConfirmationQueueURL string `envconfig:"QUEUE_SHIFT_EXCHANGE_CONFIRMATION"`
	UserInfoRequestQueueURL      string `envconfig:"QUEUE_USER_INFO_REQUEST"`
	UserInfoResponseQueueURL     string `envconfig:"QUEUE_USER_INFO_RESPONSE"`
	UsersByUnitRequestQueueURL   string `envconfig:"QUEUE_USERS_BY_UNIT_REQUEST"`
	UsersByUnitResponseQueueURL  string `envconfig:"QUEUE_USERS_BY_UNIT_RESPONSE"`
	NotificationQueueURL         string `envconfig:"QUEUE_NOTIFICATION_DISPATCH"`
}

func Load() (*Config, error) {
	// .env is optional; deployments inject the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	if err := envconfig.Process("", &config.App); err != nil {
		return nil, fmt.Errorf("invalid app configuration: %w", err)
	}
	if err := envconfig.Process("", &config.Database); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	if err := envconfig.Process("", &config.JWT); err != nil {
		return nil, fmt.Errorf("invalid jwt configuration: %w", err)
	}
	if err := envconfig.Process("", &config.Messaging); err != nil {
		return nil, fmt.Errorf("invalid messaging configuration: %w", err)
	}

	return config, nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
