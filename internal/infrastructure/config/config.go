package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cartwise/payments/pkg/kafka"
	"github.com/cartwise/payments/pkg/observability"
	"github.com/cartwise/payments/pkg/postgres"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	ServiceName string
	HTTPPort    int
	// BuildTag is stamped into gateway request metadata.
	BuildTag string

	GatewayTimeout time.Duration

	// WebhookTopic is the Kafka topic carrying raw gateway webhook deliveries.
	WebhookTopic string
	// EventsTopic is the Kafka topic domain events are published to.
	EventsTopic string

	MigrationsDir string

	Postgres postgres.Config
	Kafka    kafka.Config
	Log      observability.LogConfig
	Metrics  observability.MetricsConfig
}

// Load reads the configuration from environment variables, applying defaults
// suitable for local development.
func Load() *Config {
	serviceName := getEnv("SERVICE_NAME", "payments")

	return &Config{
		ServiceName:    serviceName,
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		BuildTag:       getEnv("BUILD_TAG", "payments-dev"),
		GatewayTimeout: getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		WebhookTopic:   getEnv("KAFKA_WEBHOOK_TOPIC", "payments.webhooks"),
		EventsTopic:    getEnv("KAFKA_EVENTS_TOPIC", "payments.events"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
		Postgres: postgres.Config{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "payments"),
			Password: getEnv("POSTGRES_PASSWORD", "payments"),
			Database: getEnv("POSTGRES_DB", "payments"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("POSTGRES_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("POSTGRES_MIN_CONNS", 2)),
		},
		Kafka: kafka.Config{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", serviceName),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Log: observability.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: observability.MetricsConfig{
			ServiceName: serviceName,
			Port:        getEnvInt("METRICS_PORT", 9090),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
