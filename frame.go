package termrast

import (
	"image"
	"time"
)

// Frame is a single decoded animation step: an owned RGBA pixel buffer plus
// the delay before the next frame is shown. Renderers never mutate the
// buffer in place; they clone or resample as needed.
type Frame struct {
	Pixels *image.NRGBA
	Delay  time.Duration
}

// NewFrame copies any image into an owned NRGBA frame.
func NewFrame(img image.Image, delay time.Duration) *Frame {
	return &Frame{Pixels: toNRGBA(img), Delay: delay}
}

// SingleFrame wraps a still image as a frame with zero delay.
func SingleFrame(img image.Image) *Frame {
	return NewFrame(img, 0)
}

// Width returns the pixel width of the frame.
func (f *Frame) Width() int { return f.Pixels.Rect.Dx() }

// Height returns the pixel height of the frame.
func (f *Frame) Height() int { return f.Pixels.Rect.Dy() }

// RenderedFrame is the output contract to the playback layer: an ordered
// list of complete, newline-free terminal lines ready to be written
// verbatim, the cell geometry actually used, and the source frame's delay.
//
// Graphics-protocol backends leave HeightCells at zero; the terminal
// advances the cursor itself, so the caller needs no vertical accounting.
type RenderedFrame struct {
	Lines       []string
	WidthCells  int
	HeightCells int
	Delay       time.Duration
}
