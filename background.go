package termrast

import "image"

// BackgroundStyle controls how transparent pixels are composited.
//
// With neither color configured, transparency passes through untouched and
// the compositor decides what to do (usually: skip the glyph). With only
// one configured, that color is used everywhere. With both, the two
// alternate in a checkerboard whose tile edge is max(PatternSize,1)*4
// pixels.
type BackgroundStyle struct {
	Color       *RGBColor
	Pattern     *RGBColor
	PatternSize int
}

// BackgroundAt resolves the background color under pixel (x, y), or nil
// when no background is configured.
func (b BackgroundStyle) BackgroundAt(x, y int) *RGBColor {
	switch {
	case b.Color == nil && b.Pattern == nil:
		return nil
	case b.Color != nil && b.Pattern == nil:
		c := *b.Color
		return &c
	case b.Color == nil:
		c := *b.Pattern
		return &c
	default:
		if b.checkerboard(x, y) {
			c := *b.Pattern
			return &c
		}
		c := *b.Color
		return &c
	}
}

func (b BackgroundStyle) checkerboard(x, y int) bool {
	size := b.PatternSize
	if size < 1 {
		size = 1
	}
	tile := size * 4
	return (x/tile+y/tile)%2 == 0
}

// blendTransparency alpha-blends every non-opaque pixel against the
// configured background, in place. Fully opaque pixels are untouched; with
// no background configured the image is returned as-is.
func blendTransparency(pixels *image.NRGBA, background BackgroundStyle) {
	if background.Color == nil && background.Pattern == nil {
		return
	}

	width := pixels.Rect.Dx()
	height := pixels.Rect.Dy()
	for y := range height {
		for x := range width {
			i := pixels.PixOffset(pixels.Rect.Min.X+x, pixels.Rect.Min.Y+y)
			if pixels.Pix[i+3] == 255 {
				continue
			}
			bg := background.BackgroundAt(x, y)
			if bg == nil {
				continue
			}
			alpha := float32(pixels.Pix[i+3]) / 255.0
			inv := 1.0 - alpha
			pixels.Pix[i+0] = blendChannel(pixels.Pix[i+0], bg.R, alpha, inv)
			pixels.Pix[i+1] = blendChannel(pixels.Pix[i+1], bg.G, alpha, inv)
			pixels.Pix[i+2] = blendChannel(pixels.Pix[i+2], bg.B, alpha, inv)
			pixels.Pix[i+3] = 255
		}
	}
}

func blendChannel(fg, bg uint8, alpha, inv float32) uint8 {
	blended := float32(fg)*alpha + float32(bg)*inv
	v := int(blended + 0.5)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
