package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/quicklog"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter implements fasthttp's Logger interface on top of a quicklog component
type FastHTTPAdapter struct {
	engine        *quicklog.Engine
	component     *quicklog.Component
	defaultLevel  string
	levelDetector func(string) string // Detects a level from message content, "" for none
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(e *quicklog.Engine, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		engine:        e,
		component:     e.Component("fasthttp"),
		defaultLevel:  quicklog.LevelInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when no level is detected
func WithDefaultLevel(level string) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect the level from message content
func WithLevelDetector(detector func(string) string) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// WithFastHTTPComponent sets the component name records are written under
func WithFastHTTPComponent(name string) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.component = a.engine.Component(name)
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != "" {
			level = detected
		}
	}

	a.component.Log(level, msg)
}

// DetectLogLevel guesses a level from message keywords, "" if none match
func DetectLogLevel(msg string) string {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return quicklog.LevelError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return quicklog.LevelWarning
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return quicklog.LevelDebug
	}

	return ""
}
