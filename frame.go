package glyphcast

import "strings"

// ChunkResult pairs a matched character with the average color of the
// chunk it replaces.
type ChunkResult struct {
	Char  rune
	Color RGB
}

// AsciiFrame is the glyph grid produced from one source frame. Cells
// are stored row-major and the slice is sized at creation, so workers
// can write disjoint regions concurrently.
type AsciiFrame struct {
	Cols  int
	Rows  int
	Cells []ChunkResult
}

// At returns the cell at (col, row).
func (f *AsciiFrame) At(col, row int) ChunkResult {
	return f.Cells[row*f.Cols+col]
}

// String renders the frame as plain text rows without color.
func (f *AsciiFrame) String() string {
	var sb strings.Builder
	sb.Grow((f.Cols + 1) * f.Rows)
	for y := 0; y < f.Rows; y++ {
		for x := 0; x < f.Cols; x++ {
			sb.WriteRune(f.Cells[y*f.Cols+x].Char)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
