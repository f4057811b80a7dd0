// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// GRPCAddr is the address the gRPC health server listens on (e.g. :9090).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN. Empty runs the API without persistence (calculator only).
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file; used with JWT_PUBLIC_KEY for RS256/ES256.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file; used with JWT_PRIVATE_KEY.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the iss claim (e.g. "healthtrack-auth").
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim (e.g. "healthtrack-api").
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the access token lifetime (e.g. "1h").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// SigninMaxAttempts is how many login attempts one email may make per SigninWindow.
	SigninMaxAttempts int `mapstructure:"SIGNIN_MAX_ATTEMPTS"`
	// SigninWindow is the rate-limit window for login attempts (e.g. "15m").
	SigninWindow string `mapstructure:"SIGNIN_WINDOW"`
	// Env is the application environment (e.g. "development", "production"). The seed binary refuses production.
	Env string `mapstructure:"APP_ENV"`

	// Events (optional). When Kafka brokers are set, the API publishes domain events to Kafka.
	// KafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsKafkaTopic is the Kafka topic for domain events (default healthtrack-events).
	EventsKafkaTopic string `mapstructure:"EVENTS_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the events worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the events worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// OTLPEndpoint is the OTLP gRPC collector endpoint (e.g. localhost:4317). Empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure disables TLS to the collector.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// ServiceName is the OTel service.name resource attribute.
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GRPC_ADDR", ":9090")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_PRIVATE_KEY", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "healthtrack-auth")
	v.SetDefault("JWT_AUDIENCE", "healthtrack-api")
	v.SetDefault("JWT_ACCESS_TTL", "1h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("SIGNIN_MAX_ATTEMPTS", 5)
	v.SetDefault("SIGNIN_WINDOW", "15m")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("EVENTS_KAFKA_TOPIC", "healthtrack-events")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "healthtrack-events-worker")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "healthtrack-backend")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.GRPCAddr == "" {
		return nil, errors.New("config: GRPC_ADDR must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.SigninMaxAttempts < 1 {
		return nil, errors.New("config: SIGNIN_MAX_ATTEMPTS must be at least 1")
	}

	return &cfg, nil
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// SigninWindowDuration parses SigninWindow. Returns 15m if unset or invalid.
func (c *Config) SigninWindowDuration() time.Duration {
	d, err := time.ParseDuration(c.SigninWindow)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// AuthEnabled reports whether both JWT keys are configured. Without them only public routes are served.
func (c *Config) AuthEnabled() bool {
	return c != nil && c.JWTPrivateKey != "" && c.JWTPublicKey != ""
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if event publishing is enabled (non-empty list) and to create the producer.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
