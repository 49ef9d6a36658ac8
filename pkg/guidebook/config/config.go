package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tripcraft/guidebook/pkg/guidebook"
	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
	memorystore "github.com/tripcraft/guidebook/pkg/guidebook/docstore/memory"
	pgstore "github.com/tripcraft/guidebook/pkg/guidebook/docstore/postgres"
	"github.com/tripcraft/guidebook/pkg/guidebook/docstore/rediscache"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		DatabaseType:       "memory",
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the guidebook admin service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Cache configuration (optional)
	RedisURL string

	// Server options
	EnableEventLogging bool
}

// WithPort sets the HTTP listen port.
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		c.Port = port
		return nil
	}
}

// WithDatabase sets the database connection string. An empty URL or "memory"
// selects the in-memory store.
func WithDatabase(url string) Option {
	return func(c *ServerConfig) error {
		return applyDatabaseURL(c, url)
	}
}

// WithRedis enables the read-through document cache.
func WithRedis(url string) Option {
	return func(c *ServerConfig) error {
		c.RedisURL = url
		return nil
	}
}

// WithEventLogging toggles the logging event sink.
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (guidebook.Service, error) {
	store, err := c.buildStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build document store: %w", err)
	}

	options := []guidebook.Option{guidebook.WithDocumentStore(store)}
	if c.EnableEventLogging {
		options = append(options, guidebook.WithEventSink(guidebook.NewLoggingEventSink(nil)))
	}

	return guidebook.New(options...)
}

// buildStore creates the document store, cached behind Redis when configured.
func (c *ServerConfig) buildStore() (docstore.Store, error) {
	var store docstore.Store
	switch c.DatabaseType {
	case "memory":
		store = memorystore.New()
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		store = pgstore.NewWithPool(pool)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}

	if c.RedisURL != "" {
		opts, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		store = rediscache.New(store, redis.NewClient(opts))
	}
	return store, nil
}

// PingPostgres verifies connectivity to Postgres before the server starts
// serving.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func applyDatabaseURL(c *ServerConfig, url string) error {
	if url == "" || url == "memory" {
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
		return nil
	}
	if strings.HasPrefix(url, "postgresql://") || strings.HasPrefix(url, "postgres://") {
		c.DatabaseType = "postgres"
		c.DatabaseURL = url
		return nil
	}
	return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", url)
}
