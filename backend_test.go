package termrast

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackendKind(t *testing.T) {
	tests := []struct {
		input string
		want  BackendKind
	}{
		{"auto", BackendAuto},
		{"unicode", BackendUnicode},
		{"block", BackendUnicode},
		{"blocks", BackendUnicode},
		{"kitty", BackendKitty},
		{"KITTY", BackendKitty},
		{"iterm2", BackendITerm2},
		{"iterm", BackendITerm2},
		{"sixel", BackendSixel},
	}
	for _, tt := range tests {
		got, err := ParseBackendKind(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseBackendKind("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedBackend))
}

func TestBackendKindString(t *testing.T) {
	assert.Equal(t, "auto", BackendAuto.String())
	assert.Equal(t, "unicode", BackendUnicode.String())
	assert.Equal(t, "kitty", BackendKitty.String())
	assert.Equal(t, "iterm2", BackendITerm2.String())
	assert.Equal(t, "sixel", BackendSixel.String())
}

func TestNewBackendDispatch(t *testing.T) {
	for _, kind := range []BackendKind{BackendAuto, BackendUnicode} {
		backend, err := NewBackend(kind)
		require.NoError(t, err)
		assert.Equal(t, BackendUnicode, backend.Kind())
		assert.Equal(t, "unicode", backend.Name())
	}

	_, err := NewBackend(BackendKind(99))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedBackend))
}

func TestAutoBackendFallsBackToUnicode(t *testing.T) {
	backend := AutoBackend(BackendKind(99))
	assert.Equal(t, BackendUnicode, backend.Kind())
}

func TestRenderConvenience(t *testing.T) {
	frame := solidFrame(2, 2, color.NRGBA{R: 255, A: 255})
	options := RenderOptions{
		Sizing:     DefaultSizing(),
		Terminal:   testTerminal(),
		Pixelation: PixelationQuarter,
	}

	rendered, err := Render(frame, options)
	require.NoError(t, err)
	assert.NotEmpty(t, rendered.Lines)
}
