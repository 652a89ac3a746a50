package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Render   RenderConfig   `yaml:"render"`
	AI       AIConfig       `yaml:"ai"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	BodyLimitMB     int           `yaml:"body_limit_mb"    env:"SERVER_BODY_LIMIT_MB"    env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// StorageConfig selects where autosaved snapshots live.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Dir    string `yaml:"dir"    env:"STORAGE_DIR"    env-default:"./resume-data"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only read when the
// postgres storage driver is selected.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"       env:"DATABASE_DSN"`
	MaxConns int32  `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"4"`
}

// AutosaveConfig controls the debounced snapshot writer.
type AutosaveConfig struct {
	Debounce     time.Duration `yaml:"debounce"      env:"AUTOSAVE_DEBOUNCE"      env-default:"1s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"AUTOSAVE_WRITE_TIMEOUT" env-default:"5s"`
}

// RenderConfig holds headless Chrome settings for PDF export.
type RenderConfig struct {
	ChromePath string        `yaml:"chrome_path" env:"CHROME_PATH"`
	Timeout    time.Duration `yaml:"timeout"     env:"RENDER_TIMEOUT"   env-default:"60s"`
	MarginMM   float64       `yaml:"margin_mm"   env:"RENDER_MARGIN_MM" env-default:"0"`
}

// AIConfig points at the writing-suggestion service. An empty BaseURL
// disables suggestions.
type AIConfig struct {
	BaseURL string        `yaml:"base_url" env:"AI_SERVICE_URL"`
	Agent   string        `yaml:"agent"    env:"AI_AGENT"   env-default:"resume"`
	Timeout time.Duration `yaml:"timeout"  env:"AI_TIMEOUT" env-default:"30s"`
}
