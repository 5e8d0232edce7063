//go:build !nosixel

package termrast

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/mattn/go-sixel"
	"github.com/soniakeys/quant/median"
)

// Sixel encodes pixel rows in bands of six.
const sixelRowGroup = 6

// SixelBackend encodes frames as DEC sixel graphics. The payload is emitted
// as a single line starting with `ESC P` and ending with `ESC \`.
type SixelBackend struct{}

func newSixelBackend() (Backend, error) {
	return &SixelBackend{}, nil
}

func (b *SixelBackend) Name() string { return "sixel" }

func (b *SixelBackend) Kind() BackendKind { return BackendSixel }

func (b *SixelBackend) Render(frame *Frame, options RenderOptions) (*RenderedFrame, error) {
	widthCells, _ := cellAllocation(frame, options)

	pixels := cloneNRGBA(frame.Pixels)
	blendTransparency(pixels, options.Background)
	pixels = padToSixelRows(pixels)

	data, err := encodeSixel(pixels)
	if err != nil {
		return nil, err
	}
	if InMultiplexer() {
		data = WrapTmuxPassthrough(data)
	}

	return &RenderedFrame{
		Lines:      []string{data + "\n"},
		WidthCells: widthCells,
		Delay:      frame.Delay,
	}, nil
}

// padToSixelRows extends the image with transparent rows until the height is
// a multiple of six.
func padToSixelRows(pixels *image.NRGBA) *image.NRGBA {
	height := pixels.Rect.Dy()
	remainder := height % sixelRowGroup
	if remainder == 0 {
		return pixels
	}

	width := pixels.Rect.Dx()
	padded := image.NewNRGBA(image.Rect(0, 0, width, height+sixelRowGroup-remainder))
	rowBytes := width * 4
	for y := 0; y < height; y++ {
		src := pixels.Pix[y*pixels.Stride : y*pixels.Stride+rowBytes]
		copy(padded.Pix[y*padded.Stride:], src)
	}
	return padded
}

func encodeSixel(pixels *image.NRGBA) (data string, err error) {
	// go-sixel panics on images it cannot quantize instead of returning an
	// error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sixel encoding panicked: %v", r)
		}
	}()

	paletted := applySixelPalette(pixels)

	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = false // palette already dithered above
	if encodeErr := enc.Encode(paletted); encodeErr != nil {
		return "", fmt.Errorf("failed to encode sixel: %w", encodeErr)
	}

	if buf.Len() == 0 {
		return "", fmt.Errorf("%w: encoder produced empty output", ErrInvalidSixelOutput)
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", fmt.Errorf("%w: encoder produced invalid UTF-8", ErrInvalidSixelOutput)
	}

	return buf.String(), nil
}

// applySixelPalette quantizes to a median cut palette with Stucki error
// diffusion before handing the image to the sixel encoder. The ditherer
// works in opaque RGB, so alpha-0 pixels (including the sixel-row filler)
// are remapped afterwards to a reserved transparent entry; the encoder
// skips alpha-0 pixels, leaving them unpainted in the terminal.
func applySixelPalette(pixels *image.NRGBA) image.Image {
	// 255 quantized colors leaves room for the transparent entry.
	quantizer := median.Quantizer(255)
	palette := quantizer.Palette(pixels).ColorPalette()

	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.Stucki
	paletted := ditherer.DitherPaletted(pixels)

	transparent := uint8(len(paletted.Palette))
	paletted.Palette = append(paletted.Palette, color.NRGBA{})
	width := pixels.Rect.Dx()
	height := pixels.Rect.Dy()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixels.NRGBAAt(x, y).A == 0 {
				paletted.SetColorIndex(x, y, transparent)
			}
		}
	}
	return paletted
}
