package quicklog

// Fatal logs at FATAL level. It does not terminate the process.
func (e *Engine) Fatal(args ...any) {
	e.Log(LevelFatal, "", args...)
}

// Error logs at ERROR level
func (e *Engine) Error(args ...any) {
	e.Log(LevelError, "", args...)
}

// Warning logs at WARNING level
func (e *Engine) Warning(args ...any) {
	e.Log(LevelWarning, "", args...)
}

// Info logs at INFO level
func (e *Engine) Info(args ...any) {
	e.Log(LevelInfo, "", args...)
}

// Debug logs at DEBUG level
func (e *Engine) Debug(args ...any) {
	e.Log(LevelDebug, "", args...)
}

// Component is a handle that stamps a fixed component name on every record
type Component struct {
	engine *Engine
	name   string
}

// Component returns a handle logging under name
func (e *Engine) Component(name string) *Component {
	return &Component{engine: e, name: name}
}

// Name returns the component name
func (c *Component) Name() string {
	return c.name
}

// Log logs args at an arbitrary level
func (c *Component) Log(level string, args ...any) {
	c.engine.Log(level, c.name, args...)
}

// Logf logs a formatted message at an arbitrary level
func (c *Component) Logf(level, format string, args ...any) {
	c.engine.Logf(level, c.name, format, args...)
}

// Fatal logs at FATAL level under the component name. It does not terminate the process.
func (c *Component) Fatal(args ...any) {
	c.engine.Log(LevelFatal, c.name, args...)
}

// Error logs at ERROR level under the component name
func (c *Component) Error(args ...any) {
	c.engine.Log(LevelError, c.name, args...)
}

// Warning logs at WARNING level under the component name
func (c *Component) Warning(args ...any) {
	c.engine.Log(LevelWarning, c.name, args...)
}

// Info logs at INFO level under the component name
func (c *Component) Info(args ...any) {
	c.engine.Log(LevelInfo, c.name, args...)
}

// Debug logs at DEBUG level under the component name
func (c *Component) Debug(args ...any) {
	c.engine.Log(LevelDebug, c.name, args...)
}
