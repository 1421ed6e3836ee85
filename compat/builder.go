package compat

import (
	"fmt"

	"github.com/lixenwraith/quicklog"
)

// Builder creates engine-backed logger adapters for gnet and fasthttp.
// It can use an existing *quicklog.Engine or start one from a *quicklog.Config
type Builder struct {
	engine *quicklog.Engine
	cfg    *quicklog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithEngine specifies an existing engine for the adapters.
// If this is set WithConfig is ignored
func (b *Builder) WithEngine(e *quicklog.Engine) *Builder {
	if e == nil {
		b.err = fmt.Errorf("quicklog/compat: provided engine cannot be nil")
		return b
	}
	b.engine = e
	return b
}

// WithConfig provides a configuration for a new engine.
// Without WithEngine or WithConfig, an engine with default configuration is started
func (b *Builder) WithConfig(cfg *quicklog.Config) *Builder {
	b.cfg = cfg
	return b
}

// getEngine resolves the engine, starting one on first use
func (b *Builder) getEngine() (*quicklog.Engine, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.engine != nil {
		return b.engine, nil
	}

	e, err := quicklog.New(b.cfg)
	if err != nil {
		return nil, err
	}

	// Cache for subsequent builds with this builder
	b.engine = e
	return e, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	e, err := b.getEngine()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(e, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	e, err := b.getEngine()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(e, opts...), nil
}

// GetEngine returns the underlying engine, starting it if needed
func (b *Builder) GetEngine() (*quicklog.Engine, error) {
	return b.getEngine()
}

// --- Example Usage ---
//
//	engine, err := quicklog.NewBuilder().Directory("/var/log/app").Name("edge").Build()
//	if err != nil { /* handle error */ }
//	defer engine.Shutdown()
//
//	builder := compat.NewBuilder().WithEngine(engine)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
