package termrast

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Widget is a Bubble Tea model that displays a frame with the unicode
// compositor. Graphics protocols move the cursor on their own, which fights
// alternate-screen TUIs, so the widget always composites glyphs.
type Widget struct {
	frame    *Frame
	options  RenderOptions
	rendered string
	err      error
	dirty    bool
}

// NewWidget creates a widget for a frame. The zero-size widget sizes itself
// from WindowSizeMsg updates.
func NewWidget(frame *Frame, options RenderOptions) *Widget {
	return &Widget{
		frame:   frame,
		options: options,
		dirty:   true,
	}
}

// SetFrame swaps the displayed frame, forcing a re-render.
func (w *Widget) SetFrame(frame *Frame) *Widget {
	w.frame = frame
	w.dirty = true
	return w
}

// SetSize pins the widget's cell budget, forcing a re-render on change.
func (w *Widget) SetSize(widthCells, heightCells int) *Widget {
	if w.options.Sizing.WidthCells != widthCells || w.options.Sizing.HeightCells != heightCells {
		w.options.Sizing.WidthCells = widthCells
		w.options.Sizing.HeightCells = heightCells
		w.dirty = true
	}
	return w
}

// Err reports the last render failure, if any.
func (w *Widget) Err() error {
	return w.err
}

func (w *Widget) Init() tea.Cmd {
	return nil
}

func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		if w.options.Terminal.Columns != size.Width || w.options.Terminal.Rows != size.Height {
			w.options.Terminal.Columns = size.Width
			w.options.Terminal.Rows = size.Height
			w.dirty = true
		}
	}
	return w, nil
}

func (w *Widget) View() string {
	if !w.dirty {
		return w.rendered
	}
	w.dirty = false

	if w.frame == nil {
		w.rendered = ""
		return w.rendered
	}

	rendered, err := Render(w.frame, w.options)
	if err != nil {
		w.err = err
		w.rendered = ""
		return w.rendered
	}
	w.err = nil
	w.rendered = strings.Join(rendered.Lines, "\n")
	return w.rendered
}
