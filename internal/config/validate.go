package config

import (
	"errors"
	"fmt"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
)

// Mode is computed from the credential snapshot taken at load time.
func (c *Config) Mode() highlights.Mode {
	return highlights.DetermineMode(c.LLM.APIKey)
}

func (c *Config) Validate() error {
	if c.Selection.MaxAttempts < 0 {
		return errors.New("selection.max_attempts must be >= 0")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
