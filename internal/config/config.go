// Package config holds the project settings read from aderyn.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Cyfrin/aderyn-sub000/internal/detect"
)

// FileName is the configuration file looked up in the project root.
const FileName = "aderyn.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Root is the project directory. Relative paths elsewhere in the file
	// are resolved against it.
	Root string `yaml:"root"`
	// Sources are files or directories holding solc AST JSON.
	Sources     []string `yaml:"sources"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	MinSeverity string   `yaml:"min_severity"`
	Format      string   `yaml:"format"`
	// Database is the findings history file. Empty disables history.
	Database  string `yaml:"database"`
	Verbosity int    `yaml:"verbosity"`
}

func Default() *Config {
	return &Config{
		Root:        ".",
		Sources:     []string{"out"},
		MinSeverity: detect.Low.String(),
		Format:      "text",
	}
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}

	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads root/aderyn.yaml, falling back to the defaults rooted
// at root when the file does not exist.
func LoadOrDefault(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.Root = root
		return cfg, nil
	}
	return Load(path)
}

// Validate checks the values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: no AST sources", ErrInvalid)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("%w: format %q, want text or json", ErrInvalid, c.Format)
	}
	if _, err := detect.ParseSeverity(c.MinSeverity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := detect.Select(c.Include, c.Exclude); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("%w: negative verbosity", ErrInvalid)
	}
	return nil
}

// Severity returns the parsed minimum severity, or Low when it is unset.
func (c *Config) Severity() detect.Severity {
	s, err := detect.ParseSeverity(c.MinSeverity)
	if err != nil {
		return detect.Low
	}
	return s
}

// Detectors resolves the include and exclude lists.
func (c *Config) Detectors() ([]detect.Detector, error) {
	return detect.Select(c.Include, c.Exclude)
}

// Resolve returns p relative to the project root unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}
