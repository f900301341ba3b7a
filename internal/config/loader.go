package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultConfigPath is tried when CONFIG_PATH is unset. Its absence is not an
// error: containers usually configure TripLingo through ENV alone.
const defaultConfigPath = "./config.yaml"

// Load builds the server and seeder configuration. ENV wins over YAML, and
// YAML wins over env-default tags. Seed names are parsed during validation.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := configPath()
	_, statErr := os.Stat(path)

	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("load triplingo config %s: %w", path, err)
		}
	case explicit || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("CONFIG_PATH %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("load triplingo config from env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid triplingo config: %w", err)
	}
	return &cfg, nil
}

func configPath() (path string, explicit bool) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path, true
	}
	return defaultConfigPath, false
}
