package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  skip_migrate: true

log:
  level: "debug"
  format: "text"

seed:
  names: "barcelona_seed_v1, paris_seed_v1"
  skip_import_on_start: true
  parallelism: 2

gate:
  backend: "redis"
  redis_addr: "redis:6379"
  redis_db: 3
  key_prefix: "test:"

rate_limit:
  admin_per_minute: 5
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if !cfg.Database.SkipMigrate {
		t.Error("database.skip_migrate should be true")
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Seed
	if want := []string{"barcelona_seed_v1", "paris_seed_v1"}; !slices.Equal(cfg.Seed.Names, want) {
		t.Errorf("seed.names = %v, want %v", cfg.Seed.Names, want)
	}
	if !cfg.Seed.SkipImportOnStart {
		t.Error("seed.skip_import_on_start should be true")
	}
	if cfg.Seed.Parallelism != 2 {
		t.Errorf("seed.parallelism = %d, want 2", cfg.Seed.Parallelism)
	}

	// Gate
	if cfg.Gate.Backend != GateBackendRedis {
		t.Errorf("gate.backend = %q, want %q", cfg.Gate.Backend, GateBackendRedis)
	}
	if cfg.Gate.RedisAddr != "redis:6379" {
		t.Errorf("gate.redis_addr = %q", cfg.Gate.RedisAddr)
	}
	if cfg.Gate.RedisDB != 3 {
		t.Errorf("gate.redis_db = %d, want 3", cfg.Gate.RedisDB)
	}
	if cfg.Gate.KeyPrefix != "test:" {
		t.Errorf("gate.key_prefix = %q, want %q", cfg.Gate.KeyPrefix, "test:")
	}

	// Rate limit
	if cfg.RateLimit.AdminPerMinute != 5 {
		t.Errorf("rate_limit.admin_per_minute = %d, want 5", cfg.RateLimit.AdminPerMinute)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SEED_NAMES", "paris_seed_v1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if !slices.Equal(cfg.Seed.Names, []string{"paris_seed_v1"}) {
		t.Errorf("seed.names = %v, want [paris_seed_v1] (ENV override)", cfg.Seed.Names)
	}
}

func TestLoad_SkipFlagsFromENV(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_SKIP_MIGRATE", "true")
	t.Setenv("SEED_SKIP_IMPORT_ON_START", "true")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Database.SkipMigrate {
		t.Error("database.skip_migrate should be true (ENV)")
	}
	if !cfg.Seed.SkipImportOnStart {
		t.Error("seed.skip_import_on_start should be true (ENV)")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	// Unset CONFIG_PATH so the fallback path is used and the file is absent.
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Seed.SkipImportOnStart {
		t.Error("seed.skip_import_on_start should default to false")
	}
	if cfg.Database.SkipMigrate {
		t.Error("database.skip_migrate should default to false")
	}
	if cfg.Seed.Parallelism != 1 {
		t.Errorf("seed.parallelism = %d, want 1 (default)", cfg.Seed.Parallelism)
	}
	if cfg.Seed.Names != nil {
		t.Errorf("seed.names = %v, want nil (all seeds)", cfg.Seed.Names)
	}
	if cfg.Gate.Backend != GateBackendPostgres {
		t.Errorf("gate.backend = %q, want %q (default)", cfg.Gate.Backend, GateBackendPostgres)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "CONFIG_PATH /nonexistent/config.yaml") {
		t.Errorf("error = %q, want the configured path", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "load triplingo config "+path) {
		t.Errorf("error = %q, want the file path", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SEED_PARALLELISM", "0")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.HasPrefix(err.Error(), "invalid triplingo config: ") {
		t.Errorf("error = %q", err)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "parallelism zero", mutate: func(c *Config) { c.Seed.Parallelism = 0 }},
		{name: "unknown gate backend", mutate: func(c *Config) { c.Gate.Backend = "etcd" }},
		{name: "redis without addr", mutate: func(c *Config) {
			c.Gate.Backend = GateBackendRedis
			c.Gate.RedisAddr = ""
		}},
		{name: "negative redis db", mutate: func(c *Config) {
			c.Gate.Backend = GateBackendRedis
			c.Gate.RedisDB = -1
		}},
		{name: "admin rate limit zero", mutate: func(c *Config) { c.RateLimit.AdminPerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseSeedNames(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: nil},
		{raw: "   ", want: nil},
		{raw: "barcelona_seed_v1", want: []string{"barcelona_seed_v1"}},
		{raw: " barcelona_seed_v1 , paris_seed_v1 ", want: []string{"barcelona_seed_v1", "paris_seed_v1"}},
		{raw: "paris_seed_v1,,paris_seed_v1", want: []string{"paris_seed_v1"}},
	}

	for _, tt := range tests {
		got := ParseSeedNames(tt.raw)
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseSeedNames(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Database:  DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb"},
		Seed:      SeedConfig{Parallelism: 1},
		Gate:      GateConfig{Backend: GateBackendPostgres, RedisAddr: "localhost:6379"},
		RateLimit: RateLimitConfig{AdminPerMinute: 10},
	}
}
