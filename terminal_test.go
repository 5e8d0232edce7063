package termrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellAspectRatio(t *testing.T) {
	size := TerminalSize{Columns: 80, Rows: 24, WidthPixels: 800, HeightPixels: 480}
	ratio, ok := size.CellAspectRatio()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 0.001)

	_, ok = TerminalSize{Columns: 80, Rows: 24}.CellAspectRatio()
	assert.False(t, ok)

	_, ok = TerminalSize{}.CellAspectRatio()
	assert.False(t, ok)
}

func TestRecommendedWidthStretch(t *testing.T) {
	size := TerminalSize{Columns: 80, Rows: 24, WidthPixels: 800, HeightPixels: 480}
	assert.InDelta(t, 2.0, size.RecommendedWidthStretch(), 0.001)

	// Unknown pixel geometry assumes 1:2 cells.
	assert.InDelta(t, 2.0, TerminalSize{Columns: 80, Rows: 24}.RecommendedWidthStretch(), 0.001)

	square := TerminalSize{Columns: 80, Rows: 24, WidthPixels: 800, HeightPixels: 240}
	assert.InDelta(t, 1.0, square.RecommendedWidthStretch(), 0.001)
}

func TestCurrentTerminalSizeHasFallback(t *testing.T) {
	size := CurrentTerminalSize()
	assert.Greater(t, size.Columns, 0)
	assert.Greater(t, size.Rows, 0)
}
