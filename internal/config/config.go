// Package config loads marksnap YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/marksnap/internal/fileutil"
	"github.com/alnah/marksnap/internal/logging"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Limits.
const (
	MaxWorkers    = 64
	maxConfigSize = 1 << 20 // 1MB
	appDirName    = "marksnap"
)

// Config holds every setting a config file may provide.
// Zero values mean "use the built-in default".
type Config struct {
	Output OutputConfig `yaml:"output"`
	Batch  BatchConfig  `yaml:"batch"`
	PDF    PDFConfig    `yaml:"pdf"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig selects the default output format.
type OutputConfig struct {
	Type string `yaml:"type"` // html or pdf
}

// BatchConfig controls how multi-file runs are scheduled.
type BatchConfig struct {
	Workers  int  `yaml:"workers"`  // 0 = auto
	FailFast bool `yaml:"failFast"` // skip remaining jobs after a failure
}

// PDFConfig controls the headless browser output.
type PDFConfig struct {
	PageSize string `yaml:"pageSize"` // letter, a4, legal
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "45s"
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, off
	Format string `yaml:"format"` // console or json
}

// TimeoutDuration returns the parsed PDF timeout, or 0 when unset.
// Validate must have succeeded for the result to be meaningful.
func (p PDFConfig) TimeoutDuration() time.Duration {
	if p.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Type) {
	case "", "html", "pdf":
	default:
		return fmt.Errorf("%w: output.type %q (must be html or pdf)", ErrConfigInvalid, c.Output.Type)
	}

	if c.Batch.Workers < 0 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers %d (must be 0-%d)", ErrConfigInvalid, c.Batch.Workers, MaxWorkers)
	}

	switch strings.ToLower(c.PDF.PageSize) {
	case "", "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrConfigInvalid, c.PDF.PageSize)
	}

	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout %q (must be a positive duration like 30s)", ErrConfigInvalid, c.PDF.Timeout)
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrConfigInvalid, err)
	}
	if err := logging.ValidateFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %v", ErrConfigInvalid, err)
	}
	return nil
}

// DefaultConfig returns a configuration where every field uses its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as name.yaml or name.yml in the working directory,
// then in the user config directory under marksnap/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes YAML, rejecting unknown fields and oversized input.
func parse(data []byte) (*Config, error) {
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), maxConfigSize)
	}
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// SearchPaths lists, in lookup order, the files LoadConfig tries for name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
