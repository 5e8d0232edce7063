//go:build !noiterm2

package termrast

import (
	"fmt"
	"strings"

	"github.com/apex/log"
)

// ITerm2Backend transmits PNG data through the iTerm2 inline image protocol:
// `ESC ]1337;File=<params>:<base64> BEL`. The terminal scales within the
// allocated cells, so pixel data is never downscaled here.
type ITerm2Backend struct{}

func newITerm2Backend() (Backend, error) {
	return &ITerm2Backend{}, nil
}

func (b *ITerm2Backend) Name() string { return "iterm2" }

func (b *ITerm2Backend) Kind() BackendKind { return BackendITerm2 }

func (b *ITerm2Backend) Render(frame *Frame, options RenderOptions) (*RenderedFrame, error) {
	widthCells, heightCells := b.cellAllocation(frame, options)

	pixels := cloneNRGBA(frame.Pixels)
	blendTransparency(pixels, options.Background)

	data, err := encodePNG(pixels, options.CompressLevel, b.Name())
	if err != nil {
		return nil, err
	}

	lines := b.buildChunks(data, widthCells, heightCells)

	if options.Verbose {
		log.WithFields(log.Fields{
			"pixels": fmt.Sprintf("%dx%d", pixels.Rect.Dx(), pixels.Rect.Dy()),
			"cells":  fmt.Sprintf("%dx%d", widthCells, heightCells),
			"chunks": len(lines),
		}).Debug("iterm2 render")
	}

	return &RenderedFrame{
		Lines:      lines,
		WidthCells: widthCells,
		Delay:      frame.Delay,
	}, nil
}

// cellAllocation sizes the cell rectangle the image claims. When only one
// dimension (or neither) is pinned, the free dimension follows the image's
// aspect ratio under an assumed cell aspect of 1:2 (width:height).
func (b *ITerm2Backend) cellAllocation(frame *Frame, options RenderOptions) (int, int) {
	sizing := options.Sizing
	terminal := options.Terminal

	maxWidthCells := sizing.WidthCells
	if maxWidthCells <= 0 {
		maxWidthCells = min(frame.Width(), terminal.Columns)
	}
	maxWidthCells = min(max(maxWidthCells, 1), max(terminal.Columns, 1))

	maxHeightCells := sizing.HeightCells
	if maxHeightCells <= 0 {
		maxHeightCells = min(frame.Height(), terminal.Rows)
	}
	maxHeightCells = min(max(maxHeightCells, 1), max(terminal.Rows, 1))

	if sizing.WidthCells > 0 && sizing.HeightCells > 0 {
		return maxWidthCells, maxHeightCells
	}

	const cellAspect = 0.5
	imgAspect := float64(frame.Width()) / float64(frame.Height())

	// Candidates truncate toward zero, not round. Preserved for output
	// compatibility.
	widthIfHeightLimited := int(float64(maxHeightCells) * imgAspect / cellAspect)
	heightIfWidthLimited := int(float64(maxWidthCells) * cellAspect / imgAspect)

	if widthIfHeightLimited <= maxWidthCells {
		return max(widthIfHeightLimited, 1), maxHeightCells
	}
	return maxWidthCells, max(heightIfWidthLimited, 1)
}

func (b *ITerm2Backend) buildChunks(data []byte, widthCells, heightCells int) []string {
	chunks := chunkBase64(data, iterm2ChunkSize)
	lines := make([]string, 0, len(chunks))
	wrap := InMultiplexer()

	for idx, chunk := range chunks {
		more := idx+1 < len(chunks)

		var line strings.Builder
		line.Grow(len(chunk) + 64)
		line.WriteString("\x1b]1337;File=")
		if idx == 0 {
			fmt.Fprintf(&line, "inline=1;size=%d;width=%d;height=%d;preserveAspectRatio=1",
				len(data), max(widthCells, 1), max(heightCells, 1))
		} else {
			line.WriteString("inline=1")
		}
		if more {
			line.WriteString(";m=1")
		}
		line.WriteByte(':')
		line.WriteString(chunk)
		line.WriteByte(0x07)

		out := line.String()
		if wrap {
			out = WrapTmuxPassthrough(out)
		}
		lines = append(lines, out)
	}

	return lines
}
