package config

import (
	"fmt"
)

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q (valid: trace, debug, info, warn, error)", c.Logging.Level)
	}

	for id, overrides := range c.ToolDefaults {
		if id == "" {
			return fmt.Errorf("tool_defaults contains an empty tool id")
		}
		if overrides == nil {
			return fmt.Errorf("tool_defaults for %s is null", id)
		}
	}

	return nil
}
