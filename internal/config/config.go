package config

import (
	"encoding/json"
	"fmt"
)

// Config represents the main toolbox configuration
type Config struct {
	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Per-tool option overrides, applied under explicitly supplied
	// options and over the tool's declared defaults.
	ToolDefaults map[string]map[string]interface{} `json:"tool_defaults" mapstructure:"tool_defaults"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "warn",
			Console: true,
			Pretty:  true,
		},
		ToolDefaults: map[string]map[string]interface{}{},
	}
}

// String returns the configuration as indented JSON
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(data)
}
