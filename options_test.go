package termrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePixelationMode(t *testing.T) {
	for input, want := range map[string]PixelationMode{
		"half":    PixelationHalf,
		"h":       PixelationHalf,
		"quarter": PixelationQuarter,
		"q":       PixelationQuarter,
		"QUARTER": PixelationQuarter,
	} {
		got, err := ParsePixelationMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParsePixelationMode("eighth")
	assert.Error(t, err)
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, RGBColor{R: 255, G: 136, B: 0}, c)

	c, err = ParseRGB("001122")
	require.NoError(t, err)
	assert.Equal(t, RGBColor{R: 0, G: 17, B: 34}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1122334"} {
		_, err := ParseRGB(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultSizing(t *testing.T) {
	sizing := DefaultSizing()
	assert.Zero(t, sizing.WidthCells)
	assert.Zero(t, sizing.HeightCells)
	assert.False(t, sizing.Upscale)
	assert.True(t, sizing.Antialias)
	assert.InDelta(t, 1.0, sizing.WidthStretch, 0.001)
}
