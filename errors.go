package termrast

import "errors"

var (
	// ErrUnsupportedBackend is returned by NewBackend when the requested
	// kind is unknown or its support was excluded at build time.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrInvalidSixelOutput is returned when the sixel encoder produces
	// empty or non-UTF-8 output.
	ErrInvalidSixelOutput = errors.New("invalid sixel output")
)
