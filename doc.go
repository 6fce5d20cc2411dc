// Package pagekit renders small HTML pages from {{placeholder}} templates
// and gates a site behind a maintenance page.
//
// The subpackages are usable on their own:
//
//   - template: tokenizer, conditional resolver and variable substitution
//     for {{name}}, {{#if cond}}, {{else}} and {{/if}}
//   - maintenance: built-in pages, options loading and an HTTP middleware
//     with cookie bypass and countdown expiry
//
// # Quick Start
//
// Template rendering:
//
//	import "github.com/randalmurphal/pagekit/template"
//	out := template.Render("Hello {{name}}", template.Context{"name": "World"})
//
// Maintenance gate:
//
//	import "github.com/randalmurphal/pagekit/maintenance"
//	gate := maintenance.NewGate(maintenance.DefaultOptions(), nil, logger)
//	router.Use(gate.Middleware)
//
// Rendering never fails at the call site: a template that cannot be
// processed is returned unmodified and the failure is logged.
package pagekit
