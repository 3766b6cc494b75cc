// Package config provides the user-editable application configuration,
// persisted as YAML in the user config directory. Environment variables are
// read-only overrides applied at load time.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds the selection-engine tunables.
type EngineConfig struct {
	// MinExtentDeg is the smallest bbox span (degrees, per axis) a drawn
	// gesture may commit. Rejects accidental shift-clicks.
	MinExtentDeg float64 `yaml:"min_extent_deg"`
	// CircleSegments is the vertex count of circle gestures.
	CircleSegments int `yaml:"circle_segments"`
	// MaskMaxDimension caps the longer side of uploaded mask images before
	// tracing.
	MaskMaxDimension int `yaml:"mask_max_dimension"`
	// SimplifyTolerance is the Douglas-Peucker tolerance in downscaled
	// pixels for mask outlines.
	SimplifyTolerance float64 `yaml:"simplify_tolerance"`
}

// BackendConfig points at the generation service.
type BackendConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// LoggingConfig mirrors the log package options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the root configuration document.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Backend BackendConfig `yaml:"backend"`
	Logging LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			MinExtentDeg:      0.0005,
			CircleSegments:    48,
			MaskMaxDimension:  150,
			SimplifyTolerance: 0.8,
		},
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMs: 15000,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Environment override variable names.
const (
	EnvBackendURL       = "MAQ_BACKEND_URL"
	EnvBackendTimeoutMs = "MAQ_BACKEND_TIMEOUT_MS"
	EnvMinExtentDeg     = "MAQ_MIN_EXTENT_DEG"
	EnvLogLevel         = "MAQ_LOG_LEVEL"
	EnvLogFormat        = "MAQ_LOG_FORMAT"
	EnvLogFile          = "MAQ_LOG_FILE"
)

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "maquette", "config.yaml")
}

// Load reads the config at path, falling back to defaults when the file does
// not exist, then applies environment overrides. A malformed file is an
// error; a missing one is not.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Defaults(), err
		}
	case errors.Is(err, os.ErrNotExist):
		// First run.
	default:
		return Defaults(), err
	}

	applyEnv(&cfg)
	sanitize(&cfg)
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBackendURL); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv(EnvBackendTimeoutMs); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.TimeoutMs = n
		}
	}
	if v := os.Getenv(EnvMinExtentDeg); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Engine.MinExtentDeg = f
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}

// sanitize folds nonsense values back to defaults rather than failing.
func sanitize(cfg *Config) {
	def := Defaults()
	if cfg.Engine.MinExtentDeg <= 0 {
		cfg.Engine.MinExtentDeg = def.Engine.MinExtentDeg
	}
	if cfg.Engine.CircleSegments < 3 {
		cfg.Engine.CircleSegments = def.Engine.CircleSegments
	}
	if cfg.Engine.MaskMaxDimension < 16 {
		cfg.Engine.MaskMaxDimension = def.Engine.MaskMaxDimension
	}
	if cfg.Engine.SimplifyTolerance <= 0 {
		cfg.Engine.SimplifyTolerance = def.Engine.SimplifyTolerance
	}
	if cfg.Backend.TimeoutMs <= 0 {
		cfg.Backend.TimeoutMs = def.Backend.TimeoutMs
	}
}
