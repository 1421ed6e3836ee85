package quicklog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"

	"github.com/lixenwraith/quicklog/formatter"
	"github.com/lixenwraith/quicklog/sanitizer"
)

// Config holds all engine configuration values
type Config struct {
	// Output file
	Name               string `toml:"name"` // Base name in QL_<name>_<timestamp>.log.csv
	Directory          string `toml:"directory"`
	FilenameTimeFormat string `toml:"filename_time_format"` // Go time layout for the filename timestamp
	LockFile           bool   `toml:"lock_file"`            // Hold an exclusive advisory lock on the open file

	// Rollover
	RolloverPeriod string `toml:"rollover_period"`  // e.g. "1 day@00:00", "Sunday@03:00", "200 seconds"
	RolloverPollMs int64  `toml:"rollover_poll_ms"` // Countdown decrement step

	// Record filtering and layout
	Levels         string `toml:"levels"`          // Comma-separated enabled level names, case sensitive
	DisabledLevels string `toml:"disabled_levels"` // Comma-separated levels registered as disabled
	Fields         string `toml:"fields"`          // Comma-separated subset/order of TIME,LEVEL,COMPONENT,MESSAGE
	Sanitization   string `toml:"sanitization"`    // "txt", "raw", "strip" or "escape"

	// Buffering
	BufferSize      int64 `toml:"buffer_size"`       // Per-buffer record capacity
	FlushIntervalMs int64 `toml:"flush_interval_ms"` // Flush cycle interval

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Output file
	Name:               "log",
	Directory:          "./logs",
	FilenameTimeFormat: "20060102",
	LockFile:           false,

	// Rollover
	RolloverPeriod: "",
	RolloverPollMs: 1000,

	// Record filtering and layout
	Levels:         DefaultLevels,
	DisabledLevels: "",
	Fields:         DefaultFields,
	Sanitization:   "txt",

	// Buffering
	BufferSize:      1000,
	FlushIntervalMs: 10,

	// Internal error handling
	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [quicklog] table of a TOML
// file and returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("quicklog.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "quicklog.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
// keyed by toml tag name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies values found in the loader into cfg, keyed by toml tag
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with type conversion for the kinds Config uses
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			// TOML decoders may hand back whole numbers as floats
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate checks the configuration for values the engine cannot run with.
// An unparseable rollover_period is not an error; it falls back to daily.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("log name cannot be empty")
	}

	if strings.ContainsAny(c.Name, `/\`) {
		return fmtErrorf("log name cannot contain path separators: %s", c.Name)
	}

	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if strings.TrimSpace(c.FilenameTimeFormat) == "" {
		return fmtErrorf("filename_time_format cannot be empty")
	}

	if _, err := sanitizer.ParseMode(c.Sanitization); err != nil {
		return fmtErrorf("%w", err)
	}

	for _, name := range splitList(c.Fields) {
		if _, ok := formatter.ParseField(name); !ok {
			return fmtErrorf("invalid field name '%s' in fields (use TIME, LEVEL, COMPONENT, MESSAGE)", name)
		}
	}

	if c.BufferSize <= 0 {
		return fmtErrorf("buffer_size must be positive: %d", c.BufferSize)
	}

	if c.FlushIntervalMs <= 0 || c.RolloverPollMs <= 0 {
		return fmtErrorf("interval settings must be positive")
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// flushInterval returns the flush interval as a duration
func (c *Config) flushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}

// rolloverPoll returns the rollover countdown step as a duration
func (c *Config) rolloverPoll() time.Duration {
	return time.Duration(c.RolloverPollMs) * time.Millisecond
}

// naming returns the file naming inputs
func (c *Config) naming() fileNaming {
	return fileNaming{
		directory:  c.Directory,
		name:       c.Name,
		timeLayout: c.FilenameTimeFormat,
	}
}

// levelMap builds the initial level map: listed levels enabled, disabled_levels off
func (c *Config) levelMap() map[string]bool {
	levels := make(map[string]bool)
	for _, name := range splitList(c.Levels) {
		levels[name] = true
	}
	for _, name := range splitList(c.DisabledLevels) {
		levels[name] = false
	}
	return levels
}
