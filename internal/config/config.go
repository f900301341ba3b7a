package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Seed      SeedConfig      `yaml:"seed"`
	Gate      GateConfig      `yaml:"gate"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	SkipMigrate     bool          `yaml:"skip_migrate"       env:"DATABASE_SKIP_MIGRATE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SeedConfig controls the bundled content import.
type SeedConfig struct {
	// NamesRaw is a comma-separated seed list; empty means every catalog seed.
	NamesRaw    string `yaml:"names"       env:"SEED_NAMES"`
	CatalogDir  string `yaml:"catalog_dir" env:"SEED_CATALOG_DIR"`
	Parallelism int    `yaml:"parallelism" env:"SEED_PARALLELISM" env-default:"1"`

	// SkipImportOnStart disables the launch import.
	SkipImportOnStart bool `yaml:"skip_import_on_start" env:"SEED_SKIP_IMPORT_ON_START"`

	// Names is parsed from NamesRaw during validation.
	Names []string `yaml:"-" env:"-"`
}

// Gate backends.
const (
	GateBackendPostgres = "postgres"
	GateBackendRedis    = "redis"
)

// GateConfig selects where the launch gate is persisted.
type GateConfig struct {
	Backend       string `yaml:"backend"        env:"GATE_BACKEND"        env-default:"postgres"`
	RedisAddr     string `yaml:"redis_addr"     env:"GATE_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"GATE_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"GATE_REDIS_DB"       env-default:"0"`
	KeyPrefix     string `yaml:"key_prefix"     env:"GATE_KEY_PREFIX"     env-default:"triplingo:"`
}

// RateLimitConfig limits admin endpoints per client IP.
type RateLimitConfig struct {
	AdminPerMinute int `yaml:"admin_per_minute" env:"RATE_LIMIT_ADMIN_PER_MINUTE" env-default:"10"`
}
