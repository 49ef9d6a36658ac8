package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig is the environment surface for the server binary.
//
//	PORT           - HTTP listen port (default: "8080")
//	ENVIRONMENT    - Runtime environment (default: "development")
//	DATABASE_URL   - "memory" or a postgresql:// connection string
//	REDIS_URL      - Optional redis:// URL enabling the document cache
//	EVENT_LOGGING  - Toggle the logging event sink (default: true)
type envConfig struct {
	Port         string `env:"PORT" env-default:"8080"`
	Environment  string `env:"ENVIRONMENT" env-default:"development"`
	DatabaseURL  string `env:"DATABASE_URL" env-default:"memory"`
	RedisURL     string `env:"REDIS_URL"`
	EventLogging bool   `env:"EVENT_LOGGING" env-default:"true"`
}

// WithEnv applies environment variable overrides.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var e envConfig
		if err := cleanenv.ReadEnv(&e); err != nil {
			return err
		}
		c.Port = e.Port
		c.Environment = e.Environment
		c.RedisURL = e.RedisURL
		c.EnableEventLogging = e.EventLogging
		return applyDatabaseURL(c, e.DatabaseURL)
	}
}
