package template

import (
	"fmt"
	"log/slog"
	"strings"
)

// previewLen bounds how much template source is copied into log records.
const previewLen = 80

// Engine renders templates written in the {{var}} / {{#if}} syntax.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	logger   *slog.Logger
	fallback func(source string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report recovered render failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFallback sets the function producing output when rendering fails.
// The default returns the template source unchanged.
func WithFallback(fn func(source string) string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.fallback = fn
		}
	}
}

// NewEngine creates an engine with the given options applied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fallback: func(source string) string { return source },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// Render tokenizes source and renders it against ctx. It never fails: if
// rendering panics, the failure is logged and the fallback is returned.
func (e *Engine) Render(source string, ctx Context) string {
	return e.Compile(source).Render(ctx)
}

// Compile tokenizes source once and returns a reusable compiled template.
func (e *Engine) Compile(source string) *Compiled {
	return &Compiled{
		engine: e,
		source: source,
		tokens: Tokenize(source),
	}
}

// Compiled is a template bound to a fixed token sequence. It holds no
// per-render state, so one Compiled may render many contexts concurrently.
type Compiled struct {
	engine *Engine
	source string
	tokens []Token
}

// Source returns the template text the Compiled was built from.
func (c *Compiled) Source() string {
	return c.source
}

// Tokens returns a copy of the compiled token sequence.
func (c *Compiled) Tokens() []Token {
	out := make([]Token, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Render renders the template against ctx, returning the engine's fallback
// if rendering fails.
func (c *Compiled) Render(ctx Context) string {
	out, err := c.Execute(ctx)
	if err != nil {
		c.engine.log().Error("template render failed, using fallback",
			slog.String("source_preview", preview(c.source)),
			slog.Any("error", err))
		return c.engine.fallback(c.source)
	}
	return out
}

// Execute renders the template against ctx. Unlike Render it reports a
// failure as an error wrapping ErrExecute instead of substituting the fallback.
func (c *Compiled) Execute(ctx Context) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = fmt.Errorf("%w: %v", ErrExecute, r)
		}
	}()

	resolved, unclosed := resolve(c.tokens, ctx)
	if unclosed > 0 {
		c.engine.log().Debug("discarding unterminated conditional blocks",
			slog.Int("count", unclosed),
			slog.String("source_preview", preview(c.source)))
	}
	return substitute(resolved, ctx), nil
}

// substitute concatenates text tokens and the values of variable tokens.
func substitute(tokens []Token, ctx Context) string {
	var buf strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case KindText:
			buf.WriteString(tok.Raw)
		case KindVariable:
			v, _ := Lookup(ctx, tok.Expr)
			if s, ok := stringify(v); ok {
				buf.WriteString(s)
			}
		}
	}
	return buf.String()
}

func preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	return s[:previewLen] + "..."
}

var defaultEngine = NewEngine()

// Render renders source against ctx with a default engine.
func Render(source string, ctx Context) string {
	return defaultEngine.Render(source, ctx)
}

// Compile compiles source with a default engine.
func Compile(source string) *Compiled {
	return defaultEngine.Compile(source)
}
