package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth" validate:"required"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// Origins allowed by CORS. An empty list allows none.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver is the database/sql driver name: pgx, mysql or sqlite3.
	Driver          string        `mapstructure:"driver" validate:"required,oneof=pgx mysql sqlite3"`
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	// QueryTimeout bounds every request's database work.
	QueryTimeout time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
}

// AuthConfig contains session authentication settings.
type AuthConfig struct {
	// Enabled guards the mutating routes with a login session.
	Enabled         bool          `mapstructure:"enabled"`
	SessionLifetime time.Duration `mapstructure:"session_lifetime" validate:"gt=0"`
	SecureCookies   bool          `mapstructure:"secure_cookies"`
	BcryptCost      int           `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// MaintenanceConfig controls background housekeeping jobs.
type MaintenanceConfig struct {
	OrphanSweepEnabled  bool   `mapstructure:"orphan_sweep_enabled"`
	OrphanSweepSchedule string `mapstructure:"orphan_sweep_schedule" validate:"required_if=OrphanSweepEnabled true"`
}
