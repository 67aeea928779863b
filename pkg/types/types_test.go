package types

import (
	"errors"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Timeout:     time.Second,
		Extensions:  []string{".sql"},
		Parallelism: 1,
		Format:      "json",
		Output:      "-",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"no parallelism", func(c *Config) { c.Parallelism = 0 }, "parallel"},
		{"negative excerpt", func(c *Config) { c.ExcerptLines = -1 }, "excerpt-lines"},
		{"unknown format", func(c *Config) { c.Format = "html" }, "format"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extensions"},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"sql"} }, "extensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}
