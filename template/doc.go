// Package template renders text templates with variable substitution and
// conditional blocks.
//
// Templates are interpreted from tokens at render time; no Go template
// program or other executable code is generated, so the engine works in
// sandboxes that forbid runtime code evaluation.
//
// # Syntax
//
// Variables use double braces. Whitespace inside the braces is ignored and
// "." separates nested keys:
//
//	Hello, {{name}}! You are signed in as {{ user.email }}.
//
// Conditionals use #if, else and /if, and may nest:
//
//	{{#if urgent}}URGENT: {{else}}FYI: {{/if}}{{title}}
//
// There are no loops, helpers, partials or escaping. Values are written
// verbatim.
//
// # Truthiness
//
// nil, false, 0, "", and empty slices and maps are false. Everything else
// is true.
//
// # Example
//
//	engine := template.NewEngine(template.WithLogger(logger))
//	page := engine.Compile("<h1>{{title}}</h1>{{#if logo}}<img src=\"{{logo}}\">{{/if}}")
//	html := page.Render(map[string]any{"title": "Back soon"})
//	// html: "<h1>Back soon</h1>"
//
// # Failures
//
// Render never fails. Missing paths render as nothing, unbalanced blocks are
// resolved leniently, and a panic while rendering is logged and replaced by
// the engine's fallback (the template source by default). Use
// Compiled.Execute to receive the failure as an error instead.
//
// # Caching
//
// Cache memoizes compiled templates by name or by content hash. It is an
// explicit value owned by the caller; there is no package-level cache.
package template
