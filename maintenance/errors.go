package maintenance

import "errors"

// Sentinel errors for maintenance operations.
var (
	// ErrUnknownTemplate is returned when a built-in template name does not exist.
	ErrUnknownTemplate = errors.New("unknown built-in template")

	// ErrInvalidOptions is returned when options fail validation.
	ErrInvalidOptions = errors.New("invalid maintenance options")

	// ErrUnsupportedFormat is returned for options files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported options file format")
)
