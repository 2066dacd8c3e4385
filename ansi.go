package glyphcast

import (
	"fmt"
	"strings"
)

// ESC is the ANSI escape character.
const ESC = "\u001b"

// ColorMode selects how cell colors are emitted in terminal output.
type ColorMode int

const (
	// ColorNone emits bare characters.
	ColorNone ColorMode = iota

	// Color256 quantizes cell colors to the xterm 256-color palette.
	Color256

	// ColorTrue emits 24-bit foreground colors.
	ColorTrue
)

// ParseColorMode resolves a color mode name.
func ParseColorMode(name string) (ColorMode, error) {
	switch name {
	case "none":
		return ColorNone, nil
	case "256":
		return Color256, nil
	case "true", "truecolor":
		return ColorTrue, nil
	}
	return ColorNone, fmt.Errorf("unknown color mode %q (valid modes: none, 256, true)", name)
}

// RenderANSI renders a frame for a terminal. A color escape is emitted
// only when the cell's code differs from the previous cell's, so runs
// of same-color cells cost a single sequence. Every line ends with a
// reset and a newline.
func RenderANSI(frame *AsciiFrame, mode ColorMode) string {
	if mode == ColorNone {
		return frame.String()
	}

	var pal *Palette256
	if mode == Color256 {
		pal = XTermPalette()
	}

	var sb strings.Builder
	for y := 0; y < frame.Rows; y++ {
		last := ""
		for x := 0; x < frame.Cols; x++ {
			cell := frame.At(x, y)

			var code string
			if mode == Color256 {
				code = fmt.Sprintf("38;5;%d", pal.Nearest(cell.Color))
			} else {
				code = fmt.Sprintf("38;2;%d;%d;%d", cell.Color.R, cell.Color.G, cell.Color.B)
			}

			if code != last {
				sb.WriteString(ESC)
				sb.WriteByte('[')
				sb.WriteString(code)
				sb.WriteByte('m')
				last = code
			}
			sb.WriteRune(cell.Char)
		}
		sb.WriteString(ESC + "[0m\n")
	}
	return sb.String()
}
