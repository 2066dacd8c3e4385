package glyphcast

import (
	"fmt"
	"strings"
)

// MissingGlyphError reports an alphabet character the chosen font cannot
// render. Glyph coverage is checked when the glyph set is built, before
// any pixels are processed.
type MissingGlyphError struct {
	Char rune
	Font string
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("font %q has no glyph for %q", e.Font, string(e.Char))
}

// InvalidMetricNameError reports a metric name that does not identify
// any of the built-in scoring metrics.
type InvalidMetricNameError struct {
	Name string
}

func (e *InvalidMetricNameError) Error() string {
	return fmt.Sprintf("unknown metric %q (valid metrics: %s)",
		e.Name, strings.Join(MetricNames(), ", "))
}

// UnderflowDimensionsError reports a conversion whose pixel area cannot
// fit a single glyph cell, either because the source image is smaller
// than one glyph or because the target width yields zero columns.
type UnderflowDimensionsError struct {
	Width       int
	Height      int
	GlyphWidth  int
	GlyphHeight int
}

func (e *UnderflowDimensionsError) Error() string {
	return fmt.Sprintf("area %dx%d px cannot fit a single %dx%d glyph cell",
		e.Width, e.Height, e.GlyphWidth, e.GlyphHeight)
}

// InconsistentFrameDimensionsError reports an animation frame whose
// glyph grid differs from the grid of the first frame. All frames are
// validated before any frame is converted.
type InconsistentFrameDimensionsError struct {
	Frame    int
	Cols     int
	Rows     int
	WantCols int
	WantRows int
}

func (e *InconsistentFrameDimensionsError) Error() string {
	return fmt.Sprintf("frame %d produces a %dx%d glyph grid, want %dx%d",
		e.Frame, e.Cols, e.Rows, e.WantCols, e.WantRows)
}
