package types

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration combining flags, environment variables,
// the config file and defaults
type Config struct {
	// PostgreSQL connection
	ConnectionString string // URI or key=value; standard PG* variables apply
	Timeout          time.Duration

	// Discovery
	SearchPath  string   // Root path for source discovery
	Extensions  []string // File extensions to check, e.g. ".sql"
	Parallelism int      // Max files processed concurrently

	// Output
	Format       string // json or text
	Output       string // Output file path, - for stdout
	ExcerptLines int    // Source lines shown before a diagnostic
	Verbose      bool   // Enable debug logging
}

// ConfigError reports an invalid configuration value
type ConfigError struct {
	Field   string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

// Validate checks the configuration for values the commands cannot work with
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return &ConfigError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}
	if c.Parallelism < 1 {
		return &ConfigError{Field: "parallel", Value: c.Parallelism, Message: "must be at least 1"}
	}
	if c.ExcerptLines < 0 {
		return &ConfigError{Field: "excerpt-lines", Value: c.ExcerptLines, Message: "must not be negative"}
	}
	switch c.Format {
	case "json", "text":
	default:
		return &ConfigError{Field: "format", Value: c.Format, Message: "must be json or text"}
	}
	if len(c.Extensions) == 0 {
		return &ConfigError{Field: "extensions", Value: c.Extensions, Message: "at least one extension is required"}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return &ConfigError{Field: "extensions", Value: ext, Message: "must start with a dot"}
		}
	}
	return nil
}
