package quicklog

import (
	"time"
)

// Builder provides a fluent API for building engine configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build validates the configuration and starts a new Engine with it.
func (b *Builder) Build() (*Engine, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg)
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Name sets the base name used in log file names.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// FilenameTimeFormat sets the time layout embedded in file names.
func (b *Builder) FilenameTimeFormat(layout string) *Builder {
	b.cfg.FilenameTimeFormat = layout
	return b
}

// LockFile enables an exclusive advisory lock on each open log file.
func (b *Builder) LockFile(enable bool) *Builder {
	b.cfg.LockFile = enable
	return b
}

// RolloverPeriod sets the rollover schedule, e.g. "1 day@00:00" or "Sunday@03:00".
func (b *Builder) RolloverPeriod(period string) *Builder {
	b.cfg.RolloverPeriod = period
	return b
}

// RolloverPoll sets the rollover countdown step.
func (b *Builder) RolloverPoll(poll time.Duration) *Builder {
	b.cfg.RolloverPollMs = poll.Milliseconds()
	return b
}

// Levels sets the enabled levels, comma-separated.
func (b *Builder) Levels(levels string) *Builder {
	b.cfg.Levels = levels
	return b
}

// DisabledLevels registers levels that start disabled, comma-separated.
func (b *Builder) DisabledLevels(levels string) *Builder {
	b.cfg.DisabledLevels = levels
	return b
}

// Fields sets the output column order, comma-separated.
func (b *Builder) Fields(fields string) *Builder {
	b.cfg.Fields = fields
	return b
}

// Sanitization sets how non-printable text is rendered: txt, raw, strip or escape.
func (b *Builder) Sanitization(mode string) *Builder {
	b.cfg.Sanitization = mode
	return b
}

// BufferSize sets the per-buffer record capacity.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// FlushInterval sets the flush cycle interval.
func (b *Builder) FlushInterval(interval time.Duration) *Builder {
	b.cfg.FlushIntervalMs = interval.Milliseconds()
	return b
}

// InternalErrorsToStderr toggles engine diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Override applies "key=value" strings, keyed by config file names.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.cfg.ApplyOverrides(overrides...)
	return b
}

// Example usage:
// engine, err := quicklog.NewBuilder().
//
//	Directory("/var/log/app").
//	Name("api").
//	RolloverPeriod("1 day@00:00").
//	BufferSize(4096).
//	Build()
//
// if err == nil {
//
//	 defer engine.Shutdown()
//	 engine.Info("engine started")
//
// }
