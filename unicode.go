package termrast

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/apex/log"
)

const (
	sgrReset   = "\x1b[0m"
	sgrResetBg = "\x1b[49m"
)

// Pixels with alpha below this read as transparent and take the configured
// background color instead. Matches the reference renderer; chosen
// empirically, preserved for output compatibility.
const transparencyThreshold = 16

// quarterSimilarity is the RGB distance below which four quadrants collapse
// into a single full block. Empirical, preserved for output compatibility.
const quarterSimilarity = 30.0

// emptySetPenalty is charged per quadrant assigned to a glyph set that has
// no color to average.
const emptySetPenalty = 100.0

// UnicodeBackend composites frames into colored block glyphs, the fallback
// that works in any terminal with 24-bit or 256-color SGR support.
type UnicodeBackend struct{}

func (b *UnicodeBackend) Name() string { return "unicode" }

func (b *UnicodeBackend) Kind() BackendKind { return BackendUnicode }

func (b *UnicodeBackend) Render(frame *Frame, options RenderOptions) (*RenderedFrame, error) {
	scaled, widthCells, heightCells := scaleForCells(frame, options)

	if options.Verbose {
		log.WithFields(log.Fields{
			"pixels": fmt.Sprintf("%dx%d", scaled.Rect.Dx(), scaled.Rect.Dy()),
			"cells":  fmt.Sprintf("%dx%d", widthCells, heightCells),
			"mode":   options.Pixelation.String(),
		}).Debug("unicode render")
	}

	if options.Pixelation == PixelationHalf {
		return renderHalfBlocks(scaled, widthCells, heightCells, frame.Delay, options), nil
	}
	return renderQuarterBlocks(scaled, widthCells, heightCells, frame.Delay, options), nil
}

func renderHalfBlocks(scaled *image.NRGBA, widthCells, heightCells int, delay time.Duration, options RenderOptions) *RenderedFrame {
	width := scaled.Rect.Dx()
	height := scaled.Rect.Dy()

	lines := make([]string, 0, (height+1)/2)
	for y := 0; y < height; y += 2 {
		var line strings.Builder
		line.Grow(width * 24)
		for x := 0; x < width; x++ {
			top := scaled.NRGBAAt(x, y)
			var bottom color.NRGBA
			if y+1 < height {
				bottom = scaled.NRGBAAt(x, y+1)
			}
			appendHalfBlock(&line, top, bottom, x, y, options.Background, options.Use8BitColor)
		}
		line.WriteString(sgrReset)
		lines = append(lines, line.String())
	}

	return &RenderedFrame{
		Lines:       lines,
		WidthCells:  widthCells,
		HeightCells: heightCells,
		Delay:       delay,
	}
}

func renderQuarterBlocks(scaled *image.NRGBA, widthCells, heightCells int, delay time.Duration, options RenderOptions) *RenderedFrame {
	width := scaled.Rect.Dx()
	height := scaled.Rect.Dy()

	lines := make([]string, 0, (height+1)/2)
	for y := 0; y < height; y += 2 {
		var line strings.Builder
		line.Grow((width / 2) * 24)
		for x := 0; x < width; x += 2 {
			tl := scaled.NRGBAAt(x, y)
			tr := tl
			if x+1 < width {
				tr = scaled.NRGBAAt(x+1, y)
			}
			bl := tl
			if y+1 < height {
				bl = scaled.NRGBAAt(x, y+1)
			}
			br := tl
			if x+1 < width && y+1 < height {
				br = scaled.NRGBAAt(x+1, y+1)
			}
			appendQuarterBlock(&line, tl, tr, bl, br, x, y, options.Background, options.Use8BitColor)
		}
		line.WriteString(sgrReset)
		lines = append(lines, line.String())
	}

	return &RenderedFrame{
		Lines:       lines,
		WidthCells:  widthCells,
		HeightCells: heightCells,
		Delay:       delay,
	}
}

// resolvePixel maps a source pixel to its display color: opaque enough
// pixels keep their own color, transparent ones take the background color
// at that coordinate, or nil when no background is configured.
func resolvePixel(pixel color.NRGBA, x, y int, background BackgroundStyle) *RGBColor {
	if pixel.A >= transparencyThreshold {
		return &RGBColor{R: pixel.R, G: pixel.G, B: pixel.B}
	}
	return background.BackgroundAt(x, y)
}

func appendHalfBlock(line *strings.Builder, top, bottom color.NRGBA, x, y int, background BackgroundStyle, use8Bit bool) {
	topColor := resolvePixel(top, x, y, background)
	bottomColor := resolvePixel(bottom, x, y+1, background)

	switch {
	case topColor == nil && bottomColor == nil:
		line.WriteString(sgrReset)
		line.WriteByte(' ')
	case topColor != nil && bottomColor != nil:
		writeFg(line, *topColor, use8Bit)
		writeBg(line, *bottomColor, use8Bit)
		line.WriteRune('▀')
	case topColor != nil:
		writeFg(line, *topColor, use8Bit)
		line.WriteString(sgrResetBg)
		line.WriteRune('▀')
	default:
		writeFg(line, *bottomColor, use8Bit)
		line.WriteString(sgrResetBg)
		line.WriteRune('▄')
	}
}

func appendQuarterBlock(line *strings.Builder, tl, tr, bl, br color.NRGBA, x, y int, background BackgroundStyle, use8Bit bool) {
	quads := [4]*RGBColor{
		resolvePixel(tl, x, y, background),
		resolvePixel(tr, x+1, y, background),
		resolvePixel(bl, x, y+1, background),
		resolvePixel(br, x+1, y+1, background),
	}

	if quads[0] == nil && quads[1] == nil && quads[2] == nil && quads[3] == nil {
		line.WriteString(sgrReset)
		line.WriteByte(' ')
		return
	}

	block, fg, bg := findBestQuarterBlock(quads)

	if fg != nil {
		writeFg(line, *fg, use8Bit)
	}
	if bg != nil {
		writeBg(line, *bg, use8Bit)
	} else {
		line.WriteString(sgrResetBg)
	}
	line.WriteRune(block.rune())
}

func writeFg(b *strings.Builder, c RGBColor, use8Bit bool) {
	if use8Bit {
		fmt.Fprintf(b, "\x1b[38;5;%dm", RGBTo256(c.R, c.G, c.B))
	} else {
		fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	}
}

func writeBg(b *strings.Builder, c RGBColor, use8Bit bool) {
	if use8Bit {
		fmt.Fprintf(b, "\x1b[48;5;%dm", RGBTo256(c.R, c.G, c.B))
	} else {
		fmt.Fprintf(b, "\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
	}
}

type quarterBlock int

const (
	blockEmpty quarterBlock = iota
	blockTopLeft
	blockTopRight
	blockBotLeft
	blockBotRight
	blockTop
	blockBottom
	blockLeft
	blockRight
	blockDiagonal     // ▚ top-left + bottom-right
	blockAntiDiagonal // ▞ top-right + bottom-left
	blockFull
)

func (q quarterBlock) rune() rune {
	switch q {
	case blockTopLeft:
		return '▘'
	case blockTopRight:
		return '▝'
	case blockBotLeft:
		return '▖'
	case blockBotRight:
		return '▗'
	case blockTop:
		return '▀'
	case blockBottom:
		return '▄'
	case blockLeft:
		return '▌'
	case blockRight:
		return '▐'
	case blockDiagonal:
		return '▚'
	case blockAntiDiagonal:
		return '▞'
	case blockFull:
		return '█'
	default:
		return ' '
	}
}

// quarterPatterns enumerates every candidate glyph with its quadrant
// partition (tl, tr, bl, br membership in the foreground set). Enumeration
// order breaks error ties: the first candidate wins.
var quarterPatterns = [...]struct {
	block quarterBlock
	fg    [4]bool
}{
	{blockEmpty, [4]bool{false, false, false, false}},
	{blockTopLeft, [4]bool{true, false, false, false}},
	{blockTopRight, [4]bool{false, true, false, false}},
	{blockBotLeft, [4]bool{false, false, true, false}},
	{blockBotRight, [4]bool{false, false, false, true}},
	{blockTop, [4]bool{true, true, false, false}},
	{blockBottom, [4]bool{false, false, true, true}},
	{blockLeft, [4]bool{true, false, true, false}},
	{blockRight, [4]bool{false, true, false, true}},
	{blockDiagonal, [4]bool{true, false, false, true}},
	{blockAntiDiagonal, [4]bool{false, true, true, false}},
	{blockFull, [4]bool{true, true, true, true}},
}

// findBestQuarterBlock picks the glyph and fg/bg colors that best
// approximate a 2x2 quadrant block. Quadrants resolved to nil (transparent
// with no background) simply don't participate in either set.
func findBestQuarterBlock(quads [4]*RGBColor) (quarterBlock, *RGBColor, *RGBColor) {
	count := 0
	for _, q := range quads {
		if q != nil {
			count++
		}
	}

	if count == 0 {
		return blockEmpty, nil, nil
	}

	if count == 4 {
		colors := []RGBColor{*quads[0], *quads[1], *quads[2], *quads[3]}
		avg := averageColors(colors)
		if colorsSimilar(colors, avg) {
			return blockFull, &avg, nil
		}
	}

	bestBlock := blockEmpty
	var bestFg, bestBg *RGBColor
	bestError := float32(math.MaxFloat32)

	for _, pattern := range quarterPatterns {
		var fgColors, bgColors []RGBColor
		for i, q := range quads {
			if q == nil {
				continue
			}
			if pattern.fg[i] {
				fgColors = append(fgColors, *q)
			} else {
				bgColors = append(bgColors, *q)
			}
		}
		if len(fgColors) == 0 && pattern.block != blockEmpty {
			continue
		}

		var fgAvg, bgAvg *RGBColor
		if len(fgColors) > 0 {
			avg := averageColors(fgColors)
			fgAvg = &avg
		}
		if len(bgColors) > 0 {
			avg := averageColors(bgColors)
			bgAvg = &avg
		}

		var total float32
		for i, q := range quads {
			if q == nil {
				continue
			}
			target := bgAvg
			if pattern.fg[i] {
				target = fgAvg
			}
			if target != nil {
				total += colorDistance(*q, *target)
			} else {
				total += emptySetPenalty
			}
		}

		if total < bestError {
			bestError = total
			bestBlock = pattern.block
			bestFg = fgAvg
			bestBg = bgAvg
		}
	}

	return bestBlock, bestFg, bestBg
}

func averageColors(colors []RGBColor) RGBColor {
	if len(colors) == 0 {
		return RGBColor{}
	}
	var r, g, b uint32
	for _, c := range colors {
		r += uint32(c.R)
		g += uint32(c.G)
		b += uint32(c.B)
	}
	n := uint32(len(colors))
	return RGBColor{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

func colorDistance(a, b RGBColor) float32 {
	dr := float32(a.R) - float32(b.R)
	dg := float32(a.G) - float32(b.G)
	db := float32(a.B) - float32(b.B)
	return float32(math.Sqrt(float64(dr*dr + dg*dg + db*db)))
}

func colorsSimilar(colors []RGBColor, avg RGBColor) bool {
	for _, c := range colors {
		if colorDistance(c, avg) >= quarterSimilarity {
			return false
		}
	}
	return true
}
