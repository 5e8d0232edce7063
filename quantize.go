package termrast

// RGBTo256 maps a 24-bit color onto the xterm-256 palette. Colors 16-231
// form a 6x6x6 RGB cube, 232-255 a 24-step grayscale ramp; the 16 system
// colors vary by terminal and are never produced.
func RGBTo256(r, g, b uint8) uint8 {
	maxDiff := max(absDiff(r, g), absDiff(r, b), absDiff(g, b))
	if maxDiff < 8 {
		// Near-gray: use the grayscale ramp, with the cube's black and
		// white corners for the extremes.
		gray := (uint16(r) + uint16(g) + uint16(b)) / 3
		switch {
		case gray < 4:
			return 16
		case gray > 247:
			return 231
		default:
			index := (gray - 4) * 24 / 244
			if index > 23 {
				index = 23
			}
			return 232 + uint8(index)
		}
	}

	return 16 + 36*quantizeChannel6(r) + 6*quantizeChannel6(g) + quantizeChannel6(b)
}

// quantizeChannel6 maps 0-255 onto the cube levels 0, 95, 135, 175, 215,
// 255. The thresholds are not evenly spaced; they minimize error against
// the level values.
func quantizeChannel6(value uint8) uint8 {
	switch {
	case value < 48:
		return 0
	case value < 115:
		return 1
	case value < 155:
		return 2
	case value < 195:
		return 3
	case value < 235:
		return 4
	default:
		return 5
	}
}

// Color256ToRGB approximates the RGB value of a 256-color palette index.
func Color256ToRGB(index uint8) RGBColor {
	switch {
	case index >= 232:
		level := (index-232)*10 + 4
		return RGBColor{R: level, G: level, B: level}
	case index >= 16:
		idx := index - 16
		return RGBColor{
			R: channel6ToRGB(idx / 36),
			G: channel6ToRGB((idx % 36) / 6),
			B: channel6ToRGB(idx % 6),
		}
	default:
		// System colors are terminal-defined.
		return RGBColor{R: 128, G: 128, B: 128}
	}
}

func channel6ToRGB(level uint8) uint8 {
	switch level {
	case 1:
		return 95
	case 2:
		return 135
	case 3:
		return 175
	case 4:
		return 215
	case 5:
		return 255
	default:
		return 0
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
