package termrast

import (
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetView(t *testing.T) {
	frame := solidFrame(4, 4, color.NRGBA{R: 255, A: 255})
	options := RenderOptions{
		Sizing:     DefaultSizing(),
		Terminal:   testTerminal(),
		Pixelation: PixelationQuarter,
	}

	w := NewWidget(frame, options)
	view := w.View()
	require.NoError(t, w.Err())
	assert.NotEmpty(t, view)
	assert.Contains(t, view, "\x1b[38;2;255;0;0m")

	// Cached until something changes.
	assert.Equal(t, view, w.View())
}

func TestWidgetResize(t *testing.T) {
	frame := solidFrame(8, 8, color.NRGBA{B: 255, A: 255})
	options := RenderOptions{
		Sizing:     DefaultSizing(),
		Terminal:   testTerminal(),
		Pixelation: PixelationHalf,
	}

	w := NewWidget(frame, options)
	wide := w.View()
	require.NoError(t, w.Err())

	w.SetSize(2, 2)
	narrow := w.View()
	require.NoError(t, w.Err())
	assert.NotEqual(t, wide, narrow)
	assert.Less(t, len(strings.Split(narrow, "\n")), len(strings.Split(wide, "\n"))+1)
}

func TestWidgetWindowSizeMsg(t *testing.T) {
	frame := solidFrame(100, 100, color.NRGBA{G: 255, A: 255})
	options := RenderOptions{
		Sizing:     DefaultSizing(),
		Terminal:   TerminalSize{Columns: 80, Rows: 24},
		Pixelation: PixelationHalf,
	}

	w := NewWidget(frame, options)
	before := w.View()

	model, cmd := w.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Nil(t, cmd)
	assert.Same(t, w, model)

	after := w.View()
	assert.NotEqual(t, before, after)
}

func TestWidgetNilFrame(t *testing.T) {
	w := NewWidget(nil, RenderOptions{Terminal: testTerminal()})
	assert.Empty(t, w.View())
	assert.NoError(t, w.Err())
}
