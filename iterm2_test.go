//go:build !noiterm2

package termrast

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestITerm2RenderEmitsSequence(t *testing.T) {
	frame := solidFrame(1, 1, color.NRGBA{R: 128, G: 64, B: 32, A: 255})
	options := RenderOptions{
		Sizing:        DefaultSizing(),
		Terminal:      testTerminal(),
		CompressLevel: 1,
	}

	rendered, err := (&ITerm2Backend{}).Render(frame, options)
	require.NoError(t, err)
	require.Len(t, rendered.Lines, 1)
	assert.Equal(t, 1, rendered.WidthCells)
	assert.Equal(t, 0, rendered.HeightCells)

	line := rendered.Lines[0]
	assert.True(t, strings.HasPrefix(line, "\x1b]1337;File="))
	assert.True(t, strings.HasSuffix(line, "\x07"))
	assert.Contains(t, line, "inline=1;size=")
	assert.Contains(t, line, "preserveAspectRatio=1")
	assert.NotContains(t, line, ";m=1")
}

func TestITerm2CellAllocationFollowsAspect(t *testing.T) {
	backend := &ITerm2Backend{}
	options := RenderOptions{Sizing: DefaultSizing(), Terminal: testTerminal()}

	// Wide image: width saturates the budget, height follows the aspect
	// ratio under 1:2 cells.
	wide := solidFrame(100, 10, color.NRGBA{A: 255})
	widthCells, heightCells := backend.cellAllocation(wide, options)
	assert.Equal(t, 80, widthCells)
	assert.Equal(t, 4, heightCells)

	// Tiny image claims a single cell.
	tiny := solidFrame(1, 1, color.NRGBA{A: 255})
	widthCells, heightCells = backend.cellAllocation(tiny, options)
	assert.Equal(t, 1, widthCells)
	assert.Equal(t, 1, heightCells)
}

func TestITerm2CellAllocationExplicitSizeWins(t *testing.T) {
	backend := &ITerm2Backend{}
	sizing := DefaultSizing()
	sizing.WidthCells = 12
	sizing.HeightCells = 6
	options := RenderOptions{Sizing: sizing, Terminal: testTerminal()}

	frame := solidFrame(100, 10, color.NRGBA{A: 255})
	widthCells, heightCells := backend.cellAllocation(frame, options)
	assert.Equal(t, 12, widthCells)
	assert.Equal(t, 6, heightCells)
}

func TestITerm2RenderWrapsForTmux(t *testing.T) {
	ForceTmux(true)
	t.Cleanup(func() { ForceTmux(false) })

	frame := solidFrame(1, 1, color.NRGBA{A: 255})
	options := RenderOptions{
		Sizing:        DefaultSizing(),
		Terminal:      testTerminal(),
		CompressLevel: 1,
	}

	rendered, err := (&ITerm2Backend{}).Render(frame, options)
	require.NoError(t, err)
	require.Len(t, rendered.Lines, 1)
	assert.True(t, strings.HasPrefix(rendered.Lines[0], "\x1bPtmux;"))
	assert.Contains(t, rendered.Lines[0], "\x1b\x1b]1337;File=")
}
