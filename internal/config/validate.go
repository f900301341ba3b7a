package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Seed.validate(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if err := c.Gate.validate(); err != nil {
		return fmt.Errorf("gate: %w", err)
	}

	if c.RateLimit.AdminPerMinute <= 0 {
		return fmt.Errorf("rate_limit.admin_per_minute must be > 0 (got %d)", c.RateLimit.AdminPerMinute)
	}

	return nil
}

func (s *SeedConfig) validate() error {
	if s.Parallelism < 1 {
		return fmt.Errorf("parallelism must be >= 1 (got %d)", s.Parallelism)
	}
	s.Names = ParseSeedNames(s.NamesRaw)
	return nil
}

func (g *GateConfig) validate() error {
	switch g.Backend {
	case GateBackendPostgres:
		return nil
	case GateBackendRedis:
		if g.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis backend")
		}
		if g.RedisDB < 0 {
			return fmt.Errorf("redis_db must be >= 0 (got %d)", g.RedisDB)
		}
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", g.Backend, GateBackendPostgres, GateBackendRedis)
	}
}

// ParseSeedNames parses a comma-separated seed list (e.g. "barcelona_seed_v1,paris_seed_v1").
// Blank items and duplicates are dropped. An empty string returns a nil slice.
func ParseSeedNames(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		names = append(names, p)
	}

	return names
}
