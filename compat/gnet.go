package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/quicklog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter routes gnet's logging.Logger calls into a quicklog component
type GnetAdapter struct {
	engine       *quicklog.Engine
	component    *quicklog.Component
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter.
// Records are written under the "gnet" component unless WithGnetComponent is given
func NewGnetAdapter(e *quicklog.Engine, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		engine:    e,
		component: e.Component("gnet"),
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetComponent sets the component name records are written under
func WithGnetComponent(name string) GnetOption {
	return func(a *GnetAdapter) {
		a.component = a.engine.Component(name)
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.component.Logf(quicklog.LevelDebug, format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.component.Logf(quicklog.LevelInfo, format, args...)
}

// Warnf logs at warning level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.component.Logf(quicklog.LevelWarning, format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.component.Logf(quicklog.LevelError, format, args...)
}

// Fatalf logs at fatal level, flushes, then triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.component.Log(quicklog.LevelFatal, msg)

	// Ensure the record reaches the file before exit
	_ = a.engine.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
