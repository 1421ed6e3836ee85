package quicklog

import (
	"sync/atomic"
	"time"
)

// Global instance for package-level functions
var defaultEngine atomic.Pointer[Engine]

// Init starts the package-level engine with cfg. A previous engine is shut
// down before the new one opens its file, so both may share a name and
// directory. An invalid cfg leaves the previous engine running.
func Init(cfg *Config) error {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return fmtErrorf("invalid configuration: %w", err)
		}
	}

	var prevErr error
	if prev := defaultEngine.Swap(nil); prev != nil {
		prevErr = prev.Shutdown()
	}

	e, err := New(cfg)
	if err != nil {
		return combineErrors(prevErr, err)
	}
	defaultEngine.Store(e)
	return prevErr
}

// InitWithDefaults starts the package-level engine with built-in defaults and
// optional "key=value" overrides
func InitWithDefaults(overrides ...string) error {
	cfg := DefaultConfig()
	if err := cfg.ApplyOverrides(overrides...); err != nil {
		return err
	}
	return Init(cfg)
}

// Default returns the package-level engine, nil before Init
func Default() *Engine {
	return defaultEngine.Load()
}

// Shutdown stops the package-level engine
func Shutdown(timeout ...time.Duration) error {
	if e := defaultEngine.Swap(nil); e != nil {
		return e.Shutdown(timeout...)
	}
	return nil
}

// Flush drains the package-level engine's buffers and waits for completion or timeout
func Flush(timeout time.Duration) error {
	if e := defaultEngine.Load(); e != nil {
		return e.Flush(timeout)
	}
	return fmtErrorf("default engine not initialized")
}

// Log logs args at level under component
func Log(level, component string, args ...any) {
	if e := defaultEngine.Load(); e != nil {
		e.Log(level, component, args...)
	}
}

// Fatal logs at FATAL level
func Fatal(args ...any) {
	Log(LevelFatal, "", args...)
}

// Error logs at ERROR level
func Error(args ...any) {
	Log(LevelError, "", args...)
}

// Warning logs at WARNING level
func Warning(args ...any) {
	Log(LevelWarning, "", args...)
}

// Info logs at INFO level
func Info(args ...any) {
	Log(LevelInfo, "", args...)
}

// Debug logs at DEBUG level
func Debug(args ...any) {
	Log(LevelDebug, "", args...)
}
