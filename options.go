package termrast

import (
	"fmt"
	"strconv"
	"strings"
)

// PixelationMode selects how many source pixels a single glyph covers.
type PixelationMode int

const (
	// PixelationHalf maps one cell to a 1x2 pixel pair (top/bottom).
	PixelationHalf PixelationMode = iota
	// PixelationQuarter maps one cell to a 2x2 pixel block.
	PixelationQuarter
)

func (m PixelationMode) String() string {
	if m == PixelationHalf {
		return "half"
	}
	return "quarter"
}

// ParsePixelationMode parses a pixelation mode name.
func ParsePixelationMode(value string) (PixelationMode, error) {
	switch strings.ToLower(value) {
	case "half", "h":
		return PixelationHalf, nil
	case "quarter", "q":
		return PixelationQuarter, nil
	}
	return 0, fmt.Errorf("unsupported pixelation mode %q (valid choices: half, quarter)", value)
}

// RGBColor is a 24-bit color.
type RGBColor struct {
	R, G, B uint8
}

// ParseRGB parses a "#rrggbb" or "rrggbb" hex color.
func ParseRGB(value string) (RGBColor, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(s) != 6 {
		return RGBColor{}, fmt.Errorf("invalid color %q: want 6 hex digits", value)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return RGBColor{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
	}, nil
}

// RenderSizing is the sizing policy for a render call.
//
// WidthCells/HeightCells of zero mean "unconstrained" in that axis. When
// both are explicit, neither fit flag applies.
type RenderSizing struct {
	WidthCells  int
	HeightCells int

	// FitWidth scales by the width factor alone; height may overflow the
	// terminal. FitHeight is the mirror. At most one is honored.
	FitWidth  bool
	FitHeight bool

	// Upscale allows scale factors above 1.0. UpscaleInteger additionally
	// floors any such factor to a whole number, keeping pixels square.
	Upscale        bool
	UpscaleInteger bool

	// WidthStretch compensates for non-square terminal cells and is
	// applied to the width only. Zero is treated as 1.0.
	WidthStretch float32

	// Antialias selects bilinear resampling; otherwise nearest neighbor.
	Antialias bool
}

// DefaultSizing returns the unconstrained policy: fit the terminal, never
// upscale, antialias on.
func DefaultSizing() RenderSizing {
	return RenderSizing{
		WidthStretch: 1.0,
		Antialias:    true,
	}
}

// RenderOptions aggregates everything a backend needs to render one frame.
// It is passed by value and never mutated.
type RenderOptions struct {
	Sizing     RenderSizing
	Terminal   TerminalSize
	Background BackgroundStyle
	Pixelation PixelationMode

	// Use8BitColor emits 256-color SGR escapes instead of 24-bit ones.
	Use8BitColor bool

	// CompressLevel is a 0-9 hint for the protocol payload codec.
	CompressLevel uint8

	// Verbose logs per-frame render diagnostics at debug level.
	Verbose bool
}
