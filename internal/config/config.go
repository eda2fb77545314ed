// Package config loads the library configuration: a dnsmasq-style file of
// "key value" lines, with [chartType] sections seeding initial field values.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joeycumines/chartview/internal/schema"
)

// Global option keys.
const (
	KeyChartType        = "chart-type"
	KeyStorageBackend   = "storage.backend"
	KeyStorageDir       = "storage.dir"
	KeyStorageNamespace = "storage.namespace"
	KeyStorageDSN       = "storage.dsn"
	KeyStorageTimeout   = "storage.timeout"
	KeyLogLevel         = "log.level"
)

// Config represents the library configuration.
type Config struct {
	// Global options.
	Global map[string]string
	// Charts holds the raw initial field values per chart type section.
	Charts map[string]map[string]string
	// Warnings contains any warnings generated during config loading
	Warnings []string
}

// NewConfig creates a new empty configuration.
func NewConfig() *Config {
	return &Config{
		Global:   make(map[string]string),
		Charts:   make(map[string]map[string]string),
		Warnings: make([]string, 0),
	}
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads configuration from the specified file path. A missing
// file yields an empty configuration.
//
// Symlinks are rejected.
func LoadFromPath(path string) (*Config, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlink not allowed in config path: %s", path)
	}

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	config := NewConfig()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSpace(strings.Trim(line, "[]"))
			if config.Charts[currentSection] == nil {
				config.Charts[currentSection] = make(map[string]string)
			}
			continue
		}

		// Parse option line: optionName remainingLineIsTheValue
		optionName, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)

		if currentSection == "" {
			config.Global[optionName] = value
		} else {
			config.Charts[currentSection][optionName] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	for _, issue := range ValidateConfig(config, DefaultSchema()) {
		config.addWarning("%s", issue)
	}

	return config, nil
}

// addWarning records a load-time problem. Warnings surface through
// chartview.Options and are logged when an Editor is created.
func (c *Config) addWarning(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// parseBool parses a boolean value from string.
// Accepts: true, false, 1, 0, yes, no, on, off (case-insensitive)
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

// GetGlobalOption returns a global configuration option.
func (c *Config) GetGlobalOption(name string) (string, bool) {
	value, exists := c.Global[name]
	return value, exists
}

// ChartValues returns the initial field values configured for chartType,
// typed by the field declarations in registry: switch fields become bools,
// slider fields numbers, everything else strings. Values that cannot be
// parsed, and keys the chart type does not declare, are skipped.
func (c *Config) ChartValues(registry *schema.Registry, chartType string) map[string]any {
	out := make(map[string]any)
	for key, raw := range c.Charts[chartType] {
		field, ok := registry.Field(chartType, key)
		if !ok || field.IsAction() {
			continue
		}
		v, err := parseFieldValue(field.Type, raw)
		if err != nil {
			continue
		}
		out[key] = v
	}
	return out
}

func parseFieldValue(t schema.FieldType, raw string) (any, error) {
	switch t {
	case schema.TypeSwitch:
		return parseBool(raw)
	case schema.TypeSlider:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number value: %s", raw)
		}
		return f, nil
	default:
		return raw, nil
	}
}

// GetWarnings returns any warnings generated during config loading.
func (c *Config) GetWarnings() []string {
	return c.Warnings
}

// HasWarnings returns true if there are any warnings.
func (c *Config) HasWarnings() bool {
	return len(c.Warnings) > 0
}
