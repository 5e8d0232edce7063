package termrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBTo256Corners(t *testing.T) {
	assert.Equal(t, uint8(16), RGBTo256(0, 0, 0))
	assert.Equal(t, uint8(231), RGBTo256(255, 255, 255))
	assert.Equal(t, uint8(196), RGBTo256(255, 0, 0))
	assert.Equal(t, uint8(46), RGBTo256(0, 255, 0))
	assert.Equal(t, uint8(21), RGBTo256(0, 0, 255))
}

func TestRGBTo256GrayscaleRamp(t *testing.T) {
	// Near-gray colors land on the ramp, ordered by brightness.
	last := uint8(0)
	for gray := 8; gray <= 240; gray += 16 {
		v := uint8(gray)
		index := RGBTo256(v, v, v)
		assert.GreaterOrEqual(t, index, uint8(232))
		assert.LessOrEqual(t, index, uint8(255))
		assert.GreaterOrEqual(t, index, last)
		last = index
	}
}

func TestRGBTo256GrayThreshold(t *testing.T) {
	// Channels within 8 of each other count as gray; beyond that, the cube.
	assert.GreaterOrEqual(t, RGBTo256(100, 104, 107), uint8(232))
	cube := RGBTo256(100, 100, 120)
	assert.GreaterOrEqual(t, cube, uint8(16))
	assert.LessOrEqual(t, cube, uint8(231))
}

func TestColor256ToRGBRoundTrip(t *testing.T) {
	for _, c := range []RGBColor{
		{0, 0, 0},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{255, 255, 255},
	} {
		index := RGBTo256(c.R, c.G, c.B)
		back := Color256ToRGB(index)
		assert.Equal(t, c, back, "index %d", index)
	}
}
