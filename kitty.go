//go:build !nokitty

package termrast

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
)

// KittyBackend transmits PNG data through the kitty graphics protocol:
// `ESC _G <params>;<base64> ESC \`, chunked so each escape stays within the
// protocol's payload ceiling.
type KittyBackend struct{}

func newKittyBackend() (Backend, error) {
	return &KittyBackend{}, nil
}

func (b *KittyBackend) Name() string { return "kitty" }

func (b *KittyBackend) Kind() BackendKind { return BackendKitty }

func (b *KittyBackend) Render(frame *Frame, options RenderOptions) (*RenderedFrame, error) {
	widthCells, heightCells := cellAllocation(frame, options)

	pixels := cloneNRGBA(frame.Pixels)
	blendTransparency(pixels, options.Background)

	data, err := encodePNG(pixels, options.CompressLevel, b.Name())
	if err != nil {
		return nil, err
	}

	lines := b.buildChunks(data, widthCells, heightCells, pixels.Rect.Dx(), pixels.Rect.Dy())

	if options.Verbose {
		log.WithFields(log.Fields{
			"pixels": fmt.Sprintf("%dx%d", pixels.Rect.Dx(), pixels.Rect.Dy()),
			"cells":  fmt.Sprintf("%dx%d", widthCells, heightCells),
			"chunks": len(lines),
		}).Debug("kitty render")
	}

	return &RenderedFrame{
		Lines:      lines,
		WidthCells: widthCells,
		Delay:      frame.Delay,
	}, nil
}

// kittyImageID derives a per-image identifier from the wall clock.
// Collisions across rapid successive frames are tolerated by the protocol's
// image lifecycle commands.
func kittyImageID() uint32 {
	return uint32(time.Now().UnixMilli())
}

func (b *KittyBackend) buildChunks(data []byte, widthCells, heightCells, pixelWidth, pixelHeight int) []string {
	chunks := chunkBase64(data, kittyChunkSize)
	lines := make([]string, 0, len(chunks))
	wrap := InMultiplexer()
	imageID := kittyImageID()

	for idx, chunk := range chunks {
		more := idx+1 < len(chunks)

		var params []string
		if idx == 0 {
			params = append(params,
				"a=T",   // transmit and display
				"f=100", // PNG payload
				"q=2",   // suppress terminal feedback
				fmt.Sprintf("i=%d", imageID),
				fmt.Sprintf("s=%d", pixelWidth),
				fmt.Sprintf("v=%d", pixelHeight),
				fmt.Sprintf("c=%d", max(widthCells, 1)),
				fmt.Sprintf("r=%d", max(heightCells, 1)),
			)
		}
		if more {
			params = append(params, "m=1")
		}

		var line strings.Builder
		line.Grow(len(chunk) + 64)
		line.WriteString("\x1b_G")
		line.WriteString(strings.Join(params, ","))
		line.WriteByte(';')
		line.WriteString(chunk)
		line.WriteString("\x1b\\")

		out := line.String()
		if wrap {
			out = WrapTmuxPassthrough(out)
		}
		lines = append(lines, out)
	}

	return lines
}
