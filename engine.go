package quicklog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/quicklog/formatter"
	"github.com/lixenwraith/quicklog/sanitizer"
)

// Engine is an asynchronous file logger. Producers hand records to a bounded
// dual buffer without touching the disk; a flush goroutine drains the buffers
// into the current file and a rollover goroutine replaces the file on schedule.
type Engine struct {
	currentConfig atomic.Value // stores *Config
	configMu      sync.Mutex   // serializes config updates
	state         State

	buffer *dualBuffer
	sink   *fileSink
	naming fileNaming
	spec   RolloverSpec

	cancel       context.CancelFunc
	flushDone    chan struct{}
	rolloverDone chan struct{}
	closeErr     error // set by the flush goroutine before flushDone closes
}

// New validates cfg, opens the first log file and starts the flush and
// rollover goroutines. A nil cfg uses DefaultConfig.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}
	cfg = cfg.Clone()

	mode, err := sanitizer.ParseMode(cfg.Sanitization)
	if err != nil {
		return nil, fmtErrorf("%w", err)
	}

	e := &Engine{
		buffer:       newDualBuffer(int(cfg.BufferSize)),
		naming:       cfg.naming(),
		spec:         ParseRolloverSpec(cfg.RolloverPeriod),
		flushDone:    make(chan struct{}),
		rolloverDone: make(chan struct{}),
	}
	e.currentConfig.Store(cfg)
	e.state.init(cfg.flushInterval())

	filename := e.naming.generateFileName(time.Now())
	file, err := openLogFile(filename, cfg.LockFile)
	if err != nil {
		return nil, err
	}

	fields := formatter.ParseFields(cfg.Fields)
	e.sink = newFileSink(file, filename, fields, cfg.levelMap(), formatter.New(sanitizer.New(mode)))

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.state.IsInitialized.Store(true)

	go e.runFlush(ctx)
	go e.runRollover(ctx)

	return e, nil
}

// getConfig returns the current configuration (thread-safe)
func (e *Engine) getConfig() *Config {
	return e.currentConfig.Load().(*Config)
}

// GetConfig returns a copy of the current configuration
func (e *Engine) GetConfig() *Config {
	return e.getConfig().Clone()
}

// updateConfig stores a modified copy of the current configuration
func (e *Engine) updateConfig(update func(c *Config)) {
	e.configMu.Lock()
	defer e.configMu.Unlock()
	c := e.getConfig().Clone()
	update(c)
	e.currentConfig.Store(c)
}

// Ingest enqueues one record without blocking on I/O. When the active buffer
// is full the record is dropped and counted as overflow. Records ingested
// after Shutdown are discarded.
func (e *Engine) Ingest(level, component, message string) {
	if !e.state.IsInitialized.Load() || e.state.ShutdownCalled.Load() {
		return
	}
	e.buffer.push(Record{
		Timestamp: time.Now().Format(formatter.TimestampLayout),
		Level:     level,
		Component: component,
		Message:   message,
	})
}

// SetFieldOrder sets the output columns from a comma-separated list of TIME,
// LEVEL, COMPONENT and MESSAGE. Unknown names are ignored; an empty result
// restores the default order.
func (e *Engine) SetFieldOrder(fields string) {
	order := formatter.ParseFields(fields)
	e.sink.setFields(order)
	e.updateConfig(func(c *Config) { c.Fields = formatter.FieldsString(order) })
}

// FieldOrder returns the current output column order
func (e *Engine) FieldOrder() string {
	return formatter.FieldsString(e.sink.getFields())
}

// SetEnabledLevels enables the comma-separated levels and disables every other known level
func (e *Engine) SetEnabledLevels(levels string) {
	list := splitList(levels)
	e.sink.setEnabledLevels(list)
	e.updateConfig(func(c *Config) {
		c.Levels = levels
		c.DisabledLevels = ""
	})
}

// ToggleLevel turns one level on or off. Unknown levels are added.
func (e *Engine) ToggleLevel(level string, enabled bool) {
	e.sink.toggleLevel(level, enabled)
}

// LevelEnabled reports whether records at level are written.
// Levels never configured are enabled.
func (e *Engine) LevelEnabled(level string) bool {
	return e.sink.levelEnabled(level)
}

// Levels returns a copy of the level map
func (e *Engine) Levels() map[string]bool {
	return e.sink.levelSnapshot()
}

// SetFlushInterval changes the flush cycle interval of the running engine
func (e *Engine) SetFlushInterval(interval time.Duration) error {
	if interval < time.Millisecond {
		return fmtErrorf("flush interval must be at least 1ms: %v", interval)
	}
	e.state.flushIntervalNs.Store(int64(interval))
	e.updateConfig(func(c *Config) { c.FlushIntervalMs = interval.Milliseconds() })

	select {
	case e.state.intervalChan <- struct{}{}:
	default:
		// A pending signal already covers this change
	}
	return nil
}

// SetBufferCapacity changes the per-buffer record capacity
func (e *Engine) SetBufferCapacity(capacity int) error {
	if capacity <= 0 {
		return fmtErrorf("buffer capacity must be positive: %d", capacity)
	}
	e.buffer.setCapacity(capacity)
	e.updateConfig(func(c *Config) { c.BufferSize = int64(capacity) })
	return nil
}

// OverflowCount returns the records dropped since the last rollover
func (e *Engine) OverflowCount() uint64 {
	return e.buffer.overflowCount()
}

// CurrentFilename returns the path of the file currently written
func (e *Engine) CurrentFilename() string {
	return e.sink.currentFilename()
}

// RolloverSpec returns the parsed rollover period
func (e *Engine) RolloverSpec() RolloverSpec {
	return e.spec
}

// RolloverState returns the rollover goroutine's phase
func (e *Engine) RolloverState() RolloverState {
	return e.state.rolloverState()
}

// Flush drains both buffers immediately, syncs the file and waits for
// completion or timeout.
func (e *Engine) Flush(timeout time.Duration) error {
	e.state.flushMutex.Lock()
	defer e.state.flushMutex.Unlock()

	if !e.state.IsInitialized.Load() || e.state.ShutdownCalled.Load() {
		return fmtErrorf("engine not initialized or already shut down")
	}

	confirmChan := make(chan struct{})

	select {
	case e.state.flushRequestChan <- confirmChan:
	case <-time.After(flushRequestTimeout):
		return fmtErrorf("failed to send flush request (flush loop busy or stopped)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Shutdown stops both background goroutines. The flush goroutine performs a
// final drain, writes the overflow status line and closes the file; only after
// that is the rollover goroutine awaited. Without a timeout Shutdown waits
// until both have stopped. Safe to call more than once and from several
// goroutines; every caller waits for the same completion.
func (e *Engine) Shutdown(timeout ...time.Duration) error {
	if e.state.ShutdownCalled.CompareAndSwap(false, true) {
		e.cancel()
	}

	var deadline <-chan time.Time
	if len(timeout) > 0 && timeout[0] > 0 {
		timer := time.NewTimer(timeout[0])
		defer timer.Stop()
		deadline = timer.C
	}

	if !waitDone(e.flushDone, deadline) {
		return fmtErrorf("flush did not finish within timeout (%v)", timeout[0])
	}
	if !waitDone(e.rolloverDone, deadline) {
		return fmtErrorf("rollover did not stop within timeout (%v)", timeout[0])
	}

	e.state.IsInitialized.Store(false)
	return e.closeErr
}
