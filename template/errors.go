package template

import "errors"

// Sentinel errors for rendering.
var (
	// ErrExecute wraps a failure recovered while rendering a compiled template.
	ErrExecute = errors.New("template render failed")

	// ErrVariable is returned when a referenced path does not resolve.
	ErrVariable = errors.New("template variable not found")
)
