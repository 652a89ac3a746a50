package config

import (
	"fmt"
	"net/url"
)

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage.driver must be one of file, postgres, memory (got %q)", c.Storage.Driver)
	}

	if c.Autosave.Debounce <= 0 {
		return fmt.Errorf("autosave.debounce must be > 0 (got %s)", c.Autosave.Debounce)
	}
	if c.Render.MarginMM < 0 {
		return fmt.Errorf("render.margin_mm must be >= 0 (got %v)", c.Render.MarginMM)
	}
	if c.AI.BaseURL != "" {
		if u, err := url.Parse(c.AI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ai.base_url must be an absolute URL (got %q)", c.AI.BaseURL)
		}
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
