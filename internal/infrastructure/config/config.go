package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type JWTConfig struct {
	Secret         string
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	Expiration     time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Config struct {
	HTTPPort      int
	MetricsPort   int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	JWT           JWTConfig
	SMTP          SMTPConfig
	ResetURL      string
	MigrationsDir string
	LogLevel      string
	LogFormat     string

	// TrackPartialPayments selects whether partly-covered installments are
	// surfaced as PARTIAL or stay PENDING until fully paid.
	TrackPartialPayments bool

	// OverdueSweepSchedule is a cron expression for the overdue sweep.
	OverdueSweepSchedule string

	ServiceName string
}

func (c Config) Validate() {
	if c.JWT.Secret == "" && c.JWT.PrivateKeyPath == "" {
		panic("JWT_SECRET or JWT_PRIVATE_KEY_PATH environment variable is required")
	}
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "novabank"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "novabank"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "novabank.ledger.events"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:         getEnv("JWT_ISSUER", "novabank"),
			Expiration:     getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "NovaBank <no-reply@novabank.app>"),
		},
		ResetURL:             getEnv("RESET_URL", "http://localhost:3000/reset-password"),
		MigrationsDir:        getEnv("MIGRATIONS_DIR", "file://./migrations"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		TrackPartialPayments: getEnvBool("TRACK_PARTIAL_PAYMENTS", true),
		OverdueSweepSchedule: getEnv("OVERDUE_SWEEP_SCHEDULE", "0 6 * * *"),
		ServiceName:          "novabank-ledger",
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
