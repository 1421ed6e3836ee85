package quicklog

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/quicklog/formatter"
)

// Log formats args into a space-separated message and ingests it.
// Level filtering happens at write time, so the caller never waits on the file lock.
func (e *Engine) Log(level, component string, args ...any) {
	if !e.state.IsInitialized.Load() || e.state.ShutdownCalled.Load() {
		return
	}
	e.Ingest(level, component, formatter.FormatArgs(args...))
}

// Logf formats according to a format specifier and ingests the result
func (e *Engine) Logf(level, component, format string, args ...any) {
	if !e.state.IsInitialized.Load() || e.state.ShutdownCalled.Load() {
		return
	}
	e.Ingest(level, component, fmt.Sprintf(format, args...))
}

// internalLog writes engine diagnostics to stderr, if enabled
func (e *Engine) internalLog(format string, args ...any) {
	if !e.getConfig().InternalErrorsToStderr {
		return
	}

	if !strings.HasPrefix(format, "quicklog: ") {
		format = "quicklog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
