package termrast

import (
	"image"
	"math"
)

// scaleForCells resamples a frame so its pixels map onto the unicode
// compositor's cell grid: one pixel column per cell in half mode, two in
// quarter mode, and always two pixel rows per cell row.
//
// Returns the resampled buffer and the cell allocation it occupies.
func scaleForCells(frame *Frame, options RenderOptions) (*image.NRGBA, int, int) {
	sizing := options.Sizing
	terminal := options.Terminal
	sourceWidth := frame.Width()
	sourceHeight := frame.Height()

	pixelsPerCellX := 1
	minSize := 1
	if options.Pixelation == PixelationQuarter {
		pixelsPerCellX = 2
		minSize = 2
	}

	maxWidthCells := sizing.WidthCells
	if maxWidthCells <= 0 {
		maxWidthCells = min(sourceWidth, terminal.Columns)
	}
	maxWidthCells = min(max(maxWidthCells, 1), max(terminal.Columns, 1))

	// Height policy is tracked in pixel rows: two pixel rows fold into one
	// cell row in both modes.
	var maxHeightPixels int
	if sizing.HeightCells > 0 {
		maxHeightPixels = sizing.HeightCells * 2
	} else {
		maxHeightPixels = min(sourceHeight, max(terminal.Rows*2, 1))
	}

	maxWidthPixels := maxWidthCells * pixelsPerCellX

	scaleWidth := float32(maxWidthPixels) / float32(sourceWidth)
	scaleHeight := float32(maxHeightPixels) / float32(sourceHeight)

	if !sizing.Upscale {
		scaleWidth = min(scaleWidth, 1.0)
		scaleHeight = min(scaleHeight, 1.0)
	}

	var scale float32
	switch {
	case sizing.FitWidth:
		scale = scaleWidth // height may overflow the terminal
	case sizing.FitHeight:
		scale = scaleHeight // width may overflow the terminal
	default:
		scale = min(scaleWidth, scaleHeight)
	}

	if sizing.UpscaleInteger && scale > 1.0 {
		scale = max(float32(math.Floor(float64(scale))), 1.0)
	}

	baseWidth := int(math.Round(float64(float32(sourceWidth) * scale)))
	baseHeight := int(math.Round(float64(float32(sourceHeight) * scale)))

	// Width stretch compensates for tall cells; re-clamp so it cannot
	// overflow the cell budget.
	stretch := sizing.WidthStretch
	if stretch <= 0 {
		stretch = 1.0
	}
	targetWidth := int(math.Round(float64(float32(baseWidth) * stretch)))
	targetWidth = min(targetWidth, maxWidthPixels)
	targetHeight := baseHeight

	if targetWidth < minSize {
		targetWidth = minSize
	}
	if targetHeight < minSize {
		targetHeight = minSize
	}

	// Keep the 2x2 (or 1x2) grouping intact.
	if options.Pixelation == PixelationQuarter && targetWidth%2 != 0 {
		targetWidth++
	}
	if targetHeight%2 != 0 {
		targetHeight++
	}

	scaled := resampleNRGBA(frame.Pixels, targetWidth, targetHeight, sizing.Antialias)
	return scaled, targetWidth / pixelsPerCellX, targetHeight / 2
}

// cellAllocation computes how much terminal space a graphics-protocol image
// claims. Pixel data is never downscaled on these paths; the terminal
// performs final presentation scaling within the allocated cells. With no
// explicit size, the allocation defaults to one cell per pixel, capped at
// the terminal budget.
func cellAllocation(frame *Frame, options RenderOptions) (widthCells, heightCells int) {
	terminal := options.Terminal

	widthCells = options.Sizing.WidthCells
	if widthCells <= 0 {
		widthCells = min(frame.Width(), terminal.Columns)
	}
	widthCells = min(max(widthCells, 1), max(terminal.Columns, 1))

	heightCells = options.Sizing.HeightCells
	if heightCells <= 0 {
		heightCells = min(frame.Height(), terminal.Rows)
	}
	heightCells = min(max(heightCells, 1), max(terminal.Rows, 1))

	return widthCells, heightCells
}
