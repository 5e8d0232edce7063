package termrast

import (
	"os"

	"golang.org/x/term"
)

// TerminalSize describes the terminal's cell grid and, when known, the
// pixel dimensions of the whole grid. Zero pixel values mean "unknown".
type TerminalSize struct {
	Columns int
	Rows    int

	WidthPixels  int
	HeightPixels int
}

// CellAspectRatio returns the width/height ratio of one character cell.
// The second return is false when pixel dimensions are unavailable.
func (t TerminalSize) CellAspectRatio() (float32, bool) {
	if t.Columns <= 0 || t.Rows <= 0 || t.WidthPixels <= 0 || t.HeightPixels <= 0 {
		return 0, false
	}
	cellWidth := float32(t.WidthPixels) / float32(t.Columns)
	cellHeight := float32(t.HeightPixels) / float32(t.Rows)
	return cellWidth / cellHeight, true
}

// RecommendedWidthStretch returns the WidthStretch factor that compensates
// for the cell aspect ratio. Cells are assumed twice as tall as wide when
// the ratio is unknown.
func (t TerminalSize) RecommendedWidthStretch() float32 {
	if ratio, ok := t.CellAspectRatio(); ok && ratio > 0 {
		return 1.0 / ratio
	}
	return 2.0
}

// CurrentTerminalSize reads the stdout cell grid, defaulting to 80x24 when
// stdout is not a terminal. Pixel dimensions are left unknown; callers that
// obtain them from the terminal can fill them in.
func CurrentTerminalSize() TerminalSize {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || columns <= 0 || rows <= 0 {
		columns, rows = 80, 24
	}
	return TerminalSize{Columns: columns, Rows: rows}
}
