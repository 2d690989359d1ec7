// Package system provides infrastructure for system-level configuration.
// This covers the user config file (~/.profilekit.yaml) that supplies
// defaults for every command.
package system

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config represents the global configuration file (~/.profilekit.yaml).
// Command-line flags take precedence over every value here.
type Config struct {
	Output OutputConfig `yaml:"output"`

	// AlwaysKeep adds keys that minimize never strips.
	AlwaysKeep []string `yaml:"always_keep"`

	// Ignore lists ancestors concretize skips by default.
	Ignore []string `yaml:"ignore"`

	// Allow lists ancestors concretize keeps un-expanded by default.
	Allow []string `yaml:"allow"`

	// Jobs limits concurrent profile processing (0 = one per profile).
	Jobs int `yaml:"jobs"`

	// SkipValidation disables profile schema validation.
	SkipValidation bool `yaml:"skip_validation"`
}

// OutputConfig configures how documents are rendered.
type OutputConfig struct {
	// Format is "json", "yaml" or "table".
	Format string `yaml:"format"`

	// Indent is the JSON indentation width.
	Indent int `yaml:"indent"`
}

// Defaults
const (
	DefaultFormat = "json"
	DefaultIndent = 4
)

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: DefaultFormat,
			Indent: DefaultIndent,
		},
		AlwaysKeep:     []string{},
		Ignore:         []string{},
		Allow:          []string{},
		Jobs:           0, // 0 means one worker per profile
		SkipValidation: false,
	}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig() with safe defaults.
// Unset fields in an existing file keep their defaults.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}
	if config.Output.Format == "" {
		config.Output.Format = DefaultFormat
	}

	// A zero indent is meaningful (compact output), so only an absent key
	// falls back to the default.
	var probe struct {
		Output struct {
			Indent *int `yaml:"indent"`
		} `yaml:"output"`
	}
	if err := yaml.Unmarshal(data, &probe); err == nil && probe.Output.Indent == nil {
		config.Output.Indent = DefaultIndent
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "yaml", "table":
	default:
		return fmt.Errorf("invalid system config: output.format %q (valid: json, yaml, table)", c.Output.Format)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("invalid system config: output.indent must not be negative")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid system config: jobs must not be negative")
	}
	return nil
}
