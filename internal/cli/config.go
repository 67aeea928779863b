package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cybertec-postgresql/scankit/pkg/scanner"
	"github.com/cybertec-postgresql/scankit/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config is an alias for the shared Config type
type Config = types.Config

// ConfigError is an alias for the shared ConfigError type
type ConfigError = types.ConfigError

// ConfigFileName is the config file looked up in the working directory
const ConfigFileName = ".scankit.yaml"

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	ConnectionString: "",
	Timeout:          30 * time.Second,
	Extensions:       []string{".sql"},
	Parallelism:      1,
	Format:           "text",
	Output:           "-",
	ExcerptLines:     scanner.DefaultExcerptLines,
	Verbose:          false,
}

// fileConfig is the layout of the YAML config file. Pointers tell unset
// keys from zero values.
type fileConfig struct {
	Connection   *string  `yaml:"connection"`
	Timeout      *string  `yaml:"timeout"`
	Extensions   []string `yaml:"extensions"`
	Parallel     *int     `yaml:"parallel"`
	Format       *string  `yaml:"format"`
	Output       *string  `yaml:"output"`
	ExcerptLines *int     `yaml:"excerpt_lines"`
	Verbose      *bool    `yaml:"verbose"`
}

// LoadConfig returns the defaults overlaid with the config file at path.
// An empty path means ConfigFileName, which may be missing.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	cfg.Extensions = append([]string(nil), DefaultConfig.Extensions...)

	optional := path == ""
	if optional {
		path = ConfigFileName
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyConfigFile(&cfg, content); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func applyConfigFile(c *Config, content []byte) error {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid config file: %w", err)
	}

	if fc.Connection != nil {
		c.ConnectionString = *fc.Connection
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return &ConfigError{Field: "timeout", Value: *fc.Timeout, Message: err.Error()}
		}
		c.Timeout = d
	}
	if fc.Extensions != nil {
		c.Extensions = fc.Extensions
	}
	if fc.Parallel != nil {
		c.Parallelism = *fc.Parallel
	}
	if fc.Format != nil {
		c.Format = *fc.Format
	}
	if fc.Output != nil {
		c.Output = *fc.Output
	}
	if fc.ExcerptLines != nil {
		c.ExcerptLines = *fc.ExcerptLines
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
	return nil
}

// Flags holds command-line flag values. Zero values leave the config
// untouched; ExcerptLines uses -1 for unset.
type Flags struct {
	Connection   string
	Timeout      time.Duration
	Extensions   []string
	Parallel     int
	Format       string
	Output       string
	ExcerptLines int
	Verbose      bool
}

// ApplyFlagsToConfig applies command-line flag values to configuration
func ApplyFlagsToConfig(c *Config, f Flags) {
	if f.Connection != "" {
		c.ConnectionString = f.Connection
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if len(f.Extensions) > 0 {
		c.Extensions = f.Extensions
	}
	if f.Parallel != 0 {
		c.Parallelism = f.Parallel
	}
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.ExcerptLines >= 0 {
		c.ExcerptLines = f.ExcerptLines
	}
	if f.Verbose {
		c.Verbose = true
	}
}
