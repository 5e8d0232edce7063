package termrast

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/nfnt/resize"
)

// toNRGBA copies any image into an owned NRGBA buffer anchored at the
// origin with a tight stride.
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

func cloneNRGBA(pixels *image.NRGBA) *image.NRGBA {
	return toNRGBA(pixels)
}

// resampleNRGBA scales pixels to width x height: bilinear when
// antialiasing, nearest neighbor otherwise. The source is never mutated.
func resampleNRGBA(pixels *image.NRGBA, width, height int, antialias bool) *image.NRGBA {
	if width == pixels.Rect.Dx() && height == pixels.Rect.Dy() {
		return cloneNRGBA(pixels)
	}
	filter := resize.NearestNeighbor
	if antialias {
		filter = resize.Bilinear
	}
	scaled := resize.Resize(uint(width), uint(height), pixels, filter)
	if nrgba, ok := scaled.(*image.NRGBA); ok {
		return nrgba
	}
	return toNRGBA(scaled)
}

// encodePNG serializes pixels for protocol transport. The 0-9 compression
// hint maps onto image/png's coarser levels.
func encodePNG(pixels *image.NRGBA, level uint8, backendName string) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: pngLevel(level)}
	if err := enc.Encode(&buf, pixels); err != nil {
		return nil, fmt.Errorf("failed to encode PNG for %s backend: %w", backendName, err)
	}
	return buf.Bytes(), nil
}

func pngLevel(level uint8) png.CompressionLevel {
	switch {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
