package maintenance

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/pagekit/template"
)

//go:embed templates/*.html
var builtinFS embed.FS

// builtinSources maps built-in template names to their embedded source.
func builtinSources() map[string]string {
	sources := make(map[string]string, 3)
	for _, name := range []string{TemplateSimple, TemplateCountdown, TemplateConstruction} {
		data, err := builtinFS.ReadFile("templates/" + name + ".html")
		if err != nil {
			panic(fmt.Sprintf("maintenance: missing embedded template %s: %v", name, err))
		}
		sources[name] = string(data)
	}
	return sources
}

// Renderer produces maintenance pages from built-in or custom templates.
// Compiled templates are kept in a cache owned by the Renderer.
// All methods are safe for concurrent use.
type Renderer struct {
	logger   *slog.Logger
	engine   *template.Engine
	cache    *template.Cache
	builtins map[string]string
}

// NewRenderer creates a Renderer. A nil logger uses slog.Default().
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	engine := template.NewEngine(template.WithLogger(logger))
	return &Renderer{
		logger:   logger,
		engine:   engine,
		cache:    template.NewCache(engine),
		builtins: builtinSources(),
	}
}

// Builtin returns the compiled built-in template called name. An unknown
// name is logged and answered with the simple template alongside an error
// wrapping ErrUnknownTemplate.
func (r *Renderer) Builtin(name string) (*template.Compiled, error) {
	source, ok := r.builtins[name]
	if !ok {
		r.logger.Error("built-in template not found, using simple",
			slog.String("template", name))
		return r.cache.Named("builtin:"+TemplateSimple, r.builtins[TemplateSimple]),
			fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return r.cache.Named("builtin:"+name, source), nil
}

// Render returns the maintenance page HTML for opts.
//
// Template content is compiled and cached by its hash. The countdown
// template is used only when a countdown date is set. Any other value falls
// back to the simple template.
func (r *Renderer) Render(opts Options) string {
	return r.compiled(opts).Render(opts.Data())
}

func (r *Renderer) compiled(opts Options) *template.Compiled {
	name := opts.Template

	if IsTemplateContent(name) {
		return r.cache.Compile(name)
	}

	switch name {
	case "", TemplateSimple, TemplateConstruction:
	case TemplateCountdown:
		if opts.Countdown == "" {
			r.logger.Warn("countdown template requires a countdown date, using simple")
			name = TemplateSimple
		}
	default:
		r.logger.Warn("template is not a built-in name or template content, using simple",
			slog.String("template", name))
		name = TemplateSimple
	}
	if name == "" {
		name = TemplateSimple
	}

	compiled, _ := r.Builtin(name)
	return compiled
}

// Reset drops every compiled template so the next render recompiles.
func (r *Renderer) Reset() {
	r.cache.Clear()
}

// Cached returns the number of compiled templates currently held.
func (r *Renderer) Cached() int {
	return r.cache.Len()
}
