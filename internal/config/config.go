package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// StaticDir, when set, is served at "/" (index.html plus assets).
	StaticDir string `mapstructure:"static_dir"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// EventsConfig controls publication of domain events.
// Publishing is disabled when no Kafka brokers are configured.
type EventsConfig struct {
	KafkaBrokers []string `mapstructure:"kafka_brokers" validate:"omitempty,dive,hostname_port"`
	Topic        string   `mapstructure:"topic"         validate:"required"`
	// WriteTimeout bounds a single publish.
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
}

// Enabled reports whether events should be published to Kafka.
func (c EventsConfig) Enabled() bool {
	return len(c.KafkaBrokers) > 0
}
