package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "./config.yaml"
)

// Load picks the YAML file named by CONFIG_PATH, or ./config.yaml when that
// file exists, and hands it to LoadFile.
func Load() (*Config, error) {
	path := os.Getenv(configPathEnv)
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", defaultConfigPath, err)
		}
	}
	return LoadFile(path)
}

// LoadFile reads path, then the environment, then env-default tags, and
// validates the result. An empty path reads the environment only.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
