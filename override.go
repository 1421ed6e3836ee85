package quicklog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ApplyOverride applies "key=value" overrides to the running engine. Only
// settings that can change at runtime are accepted: levels, disabled_levels,
// fields, buffer_size and flush_interval_ms. All overrides are parsed before
// any is applied; a parse error leaves the engine unchanged.
//
// Example:
//
//	err := engine.ApplyOverride(
//	    "levels=FATAL,ERROR,WARNING",
//	    "flush_interval_ms=50",
//	)
func (e *Engine) ApplyOverride(overrides ...string) error {
	cfg := e.getConfig().Clone()

	var errors []error
	var keys []string

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if !runtimeKeys[key] {
			errors = append(errors, fmtErrorf("configuration key '%s' cannot be changed at runtime", key))
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
			continue
		}
		keys = append(keys, key)
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, key := range keys {
		switch key {
		case "levels":
			e.SetEnabledLevels(cfg.Levels)
		case "disabled_levels":
			for _, level := range splitList(cfg.DisabledLevels) {
				e.ToggleLevel(level, false)
			}
			e.updateConfig(func(c *Config) { c.DisabledLevels = cfg.DisabledLevels })
		case "fields":
			e.SetFieldOrder(cfg.Fields)
		case "buffer_size":
			if err := e.SetBufferCapacity(int(cfg.BufferSize)); err != nil {
				return err
			}
		case "flush_interval_ms":
			if err := e.SetFlushInterval(cfg.flushInterval()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyOverrides applies "key=value" overrides to a configuration that has not
// been handed to New yet. Every key is accepted. The result is not validated.
func (c *Config) ApplyOverrides(overrides ...string) error {
	var errors []error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}
		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}
	return combineConfigErrors(errors)
}

// runtimeKeys are the configuration keys ApplyOverride accepts
var runtimeKeys = map[string]bool{
	"levels":            true,
	"disabled_levels":   true,
	"fields":            true,
	"buffer_size":       true,
	"flush_interval_ms": true,
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("quicklog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "quicklog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
// Keys are the toml tag names.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Output file
	case "name":
		cfg.Name = value
	case "directory":
		cfg.Directory = value
	case "filename_time_format":
		cfg.FilenameTimeFormat = value
	case "lock_file":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for lock_file '%s': %w", value, err)
		}
		cfg.LockFile = boolVal

	// Rollover
	case "rollover_period":
		cfg.RolloverPeriod = value
	case "rollover_poll_ms":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for rollover_poll_ms '%s': %w", value, err)
		}
		cfg.RolloverPollMs = intVal

	// Record filtering and layout
	case "levels":
		cfg.Levels = value
	case "disabled_levels":
		cfg.DisabledLevels = value
	case "fields":
		cfg.Fields = value
	case "sanitization":
		cfg.Sanitization = value

	// Buffering
	case "buffer_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for buffer_size '%s': %w", value, err)
		}
		cfg.BufferSize = intVal
	case "flush_interval_ms":
		// Accept a bare millisecond count or a duration string such as "250ms"
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			d, durErr := time.ParseDuration(value)
			if durErr != nil {
				return fmtErrorf("invalid integer value for flush_interval_ms '%s': %w", value, err)
			}
			intVal = d.Milliseconds()
		}
		cfg.FlushIntervalMs = intVal

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
