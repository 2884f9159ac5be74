package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file.
const FileName = "chartseed.yaml"

// Environment variables that override file values.
const (
	EnvDBPath       = "CHARTSEED_DB_PATH"
	EnvDataset      = "CHARTSEED_DATASET"
	EnvLogLevel     = "CHARTSEED_LOG_LEVEL"
	EnvInferParents = "CHARTSEED_INFER_PARENTS"
)

// Config represents the top-level chartseed.yaml configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Database  DatabaseConfig  `yaml:"database"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
	Log       LogConfig       `yaml:"log"`
}

// DatasetConfig locates the reference dataset.
type DatasetConfig struct {
	Dir string `yaml:"dir"` // relative to the project; "" = built-in dataset
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"` // relative to the project
}

// HierarchyConfig controls parent inference.
type HierarchyConfig struct {
	InferParents bool `yaml:"infer_parents"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a chartseed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Dataset:   DatasetConfig{Dir: "dataset"},
		Database:  DatabaseConfig{Path: filepath.Join("data", "chartseed.db")},
		Hierarchy: HierarchyConfig{InferParents: true},
		Log:       LogConfig{Level: "info"},
	}
}

// LoadProject reads <dir>/chartseed.yaml, falling back to defaults with the
// built-in dataset when the file is missing, then loads <dir>/.env and
// applies environment overrides.
func LoadProject(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.Dataset.Dir = ""
	} else if err != nil {
		return nil, err
	}

	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CHARTSEED_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvDBPath); ok {
		c.Database.Path = v
	}
	if v, ok := os.LookupEnv(EnvDataset); ok {
		c.Dataset.Dir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvInferParents); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvInferParents, v, err)
		}
		c.Hierarchy.InferParents = b
	}
	return nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parsing log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Resolve returns p joined to dir unless p is absolute.
func Resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
