package config

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fishlist/internal/logging"
	"github.com/goliatone/go-fishlist/pkg/model"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile:
		if strings.TrimSpace(c.Data) == "" {
			return fmt.Errorf("config: data is required when source is %q", SourceFile)
		}
	case SourceStore:
		if strings.TrimSpace(c.Database) == "" {
			return fmt.Errorf("config: database is required when source is %q", SourceStore)
		}
	default:
		return fmt.Errorf("config: unknown source %q (want %q or %q)", c.Source, SourceFile, SourceStore)
	}

	if strings.TrimSpace(c.Renderer) == "" {
		return fmt.Errorf("config: renderer is required")
	}
	if _, err := model.ParseKeyStrategy(c.KeyStrategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: http_timeout must not be negative")
	}
	return nil
}

// Keys returns the parsed key strategy. Validate guarantees it parses.
func (c *Config) Keys() model.KeyStrategy {
	strategy, _ := model.ParseKeyStrategy(c.KeyStrategy)
	return strategy
}
