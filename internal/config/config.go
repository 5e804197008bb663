// Package config loads the uc-transformer configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultRuntime = "github.com/hatsyjs/churi"
	DefaultDist    = "uclib/uclib.go"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration file.
type Config struct {
	Version string `yaml:"version"`
	// Runtime is the import path of the package exporting the factories.
	Runtime string `yaml:"runtime"`
	// Dir is the directory packages are loaded from.
	Dir string `yaml:"dir,omitempty"`
	// Patterns are the package patterns to transform.
	Patterns []string `yaml:"patterns,omitempty"`
	// Tags are build tags passed to the loader.
	Tags []string `yaml:"tags,omitempty"`
	// Tests includes test files.
	Tests bool `yaml:"tests,omitempty"`
	// Dist is the generated library file, relative to Dir.
	Dist string `yaml:"dist"`
	// TempDir holds intermediate files. Defaults to the directory of Dist.
	TempDir string `yaml:"tempDir,omitempty"`
	// OutDir receives rewritten files. Empty rewrites files in place.
	OutDir string `yaml:"outDir,omitempty"`
	// Backend compiles the generated library.
	Backend Backend `yaml:"backend,omitempty"`
}

// Backend configures the exec backend.
type Backend struct {
	Command []string `yaml:"command,omitempty"`
	Dir     string   `yaml:"dir,omitempty"`
	Env     []string `yaml:"env,omitempty"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML configuration file. Relative paths are
// resolved against the directory of the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.resolve(filepath.Dir(path))

	return cfg, nil
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"./..."}
	}

	if cfg.Dist == "" {
		cfg.Dist = DefaultDist
	}
}

func (cfg *Config) resolve(base string) {
	cfg.Dir = join(base, cfg.Dir)
	cfg.OutDir = join(base, cfg.OutDir)
	cfg.Backend.Dir = join(base, cfg.Backend.Dir)
}

func join(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(base, path)
}

// DistPath returns the library file path resolved against Dir.
func (cfg *Config) DistPath() string {
	return join(cfg.Dir, cfg.Dist)
}

// TempPath returns the temporary directory resolved against Dir.
func (cfg *Config) TempPath() string {
	return join(cfg.Dir, cfg.TempDir)
}

// Validate checks the configuration for errors.
func (cfg *Config) Validate() error {
	var errs []error

	if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported version %q", cfg.Version))
	}

	if cfg.Runtime == "" {
		errs = append(errs, errors.New("runtime is required"))
	}

	if filepath.Ext(cfg.Dist) != ".go" {
		errs = append(errs, fmt.Errorf("dist %q must be a .go file", cfg.Dist))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
