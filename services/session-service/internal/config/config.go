package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// SessionServiceConfig holds the environment driven settings of the session service.
type SessionServiceConfig struct {
	APIKey string `env:"API_KEY"`

	Mongo   MongoConfig
	HTTP    HTTPConfig
	Log     LogConfig
	Consul  ConsulConfig
	GRPC    GRPCConfig
	Service string `env:"SERVICE_NAME" envDefault:"session-service"`
}

// MongoConfig defines the document store connection.
type MongoConfig struct {
	URI      string `env:"MONGODB_URI"`
	Database string `env:"MONGODB_DB"  envDefault:"drowsy"`
}

// HTTPConfig defines where the HTTP API listens.
type HTTPConfig struct {
	Host           string   `env:"HTTP_HOST"            envDefault:"0.0.0.0"`
	Port           int      `env:"HTTP_PORT"            envDefault:"8000"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"        envSeparator:","`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// ConsulConfig enables service registration when Addr is set.
type ConsulConfig struct {
	Addr          string `env:"CONSUL_ADDR"`
	AdvertiseHost string `env:"CONSUL_ADVERTISE_HOST"`
}

// GRPCConfig enables the gRPC health server when HealthPort is non-zero.
type GRPCConfig struct {
	HealthPort int `env:"GRPC_HEALTH_PORT" envDefault:"0"`
}

// DefaultMongoURI is used when MONGODB_URI is unset.
const DefaultMongoURI = "mongodb://localhost:27017"

// LoadDotEnv loads variables from the given files into the process environment.
// Missing files are ignored; variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// NewSessionServiceConfig parses the configuration from the environment.
func NewSessionServiceConfig() (*SessionServiceConfig, error) {
	cfg, err := env.ParseAs[SessionServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MongoURI returns the configured URI or DefaultMongoURI.
func (c *SessionServiceConfig) MongoURI() string {
	if c.Mongo.URI == "" {
		return DefaultMongoURI
	}
	return c.Mongo.URI
}

// HTTPAddr returns the host:port the HTTP server binds to.
func (c *SessionServiceConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func (c *SessionServiceConfig) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}
	if c.GRPC.HealthPort < 0 || c.GRPC.HealthPort > 65535 {
		return fmt.Errorf("invalid GRPC_HEALTH_PORT %d", c.GRPC.HealthPort)
	}
	if c.GRPC.HealthPort != 0 && c.GRPC.HealthPort == c.HTTP.Port {
		return errors.New("GRPC_HEALTH_PORT must differ from HTTP_PORT")
	}
	if c.Mongo.Database == "" {
		return errors.New("missing MONGODB_DB environment variable")
	}

	return nil
}
