package glyphcast

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
)

// cellJSON is the interchange form of one grid cell. The color triple
// is omitted for colorless output.
type cellJSON struct {
	Ch  string    `json:"ch"`
	RGB *[3]uint8 `json:"rgb,omitempty"`
}

// animationJSON is the interchange form of a converted animation:
// frame metadata plus frames as rows of cells.
type animationJSON struct {
	FPS    float64        `json:"fps"`
	Cols   int            `json:"cols"`
	Rows   int            `json:"rows"`
	Frames [][][]cellJSON `json:"frames"`
}

// EncodeAnimation writes the animation as JSON. With color disabled the
// per-cell color triples are dropped, which roughly halves the output.
func EncodeAnimation(w io.Writer, a *Animation, withColor bool) error {
	out := animationJSON{
		FPS:    a.FPS,
		Cols:   a.Cols,
		Rows:   a.Rows,
		Frames: make([][][]cellJSON, len(a.Frames)),
	}

	for fi, frame := range a.Frames {
		rows := make([][]cellJSON, frame.Rows)
		for y := 0; y < frame.Rows; y++ {
			row := make([]cellJSON, frame.Cols)
			for x := 0; x < frame.Cols; x++ {
				cell := frame.At(x, y)
				row[x].Ch = string(cell.Char)
				if withColor {
					row[x].RGB = &[3]uint8{cell.Color.R, cell.Color.G, cell.Color.B}
				}
			}
			rows[y] = row
		}
		out.Frames[fi] = rows
	}

	return json.NewEncoder(w).Encode(&out)
}

// DecodeAnimation reads an animation from its JSON form, validating
// the grid metadata against the frame contents. Cells without a color
// triple decode with a zero color.
func DecodeAnimation(r io.Reader) (*Animation, error) {
	var in animationJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode animation: %w", err)
	}

	if in.Cols < 1 || in.Rows < 1 {
		return nil, fmt.Errorf("animation grid %dx%d is invalid", in.Cols, in.Rows)
	}
	if len(in.Frames) == 0 {
		return nil, fmt.Errorf("animation has no frames")
	}
	if in.FPS <= 0 {
		return nil, fmt.Errorf("animation fps %g is invalid", in.FPS)
	}

	a := &Animation{
		FPS:    in.FPS,
		Cols:   in.Cols,
		Rows:   in.Rows,
		Frames: make([]*AsciiFrame, len(in.Frames)),
	}

	for fi, rows := range in.Frames {
		if len(rows) != in.Rows {
			return nil, fmt.Errorf("frame %d has %d rows, want %d", fi, len(rows), in.Rows)
		}
		frame := &AsciiFrame{
			Cols:  in.Cols,
			Rows:  in.Rows,
			Cells: make([]ChunkResult, in.Cols*in.Rows),
		}
		for y, row := range rows {
			if len(row) != in.Cols {
				return nil, fmt.Errorf("frame %d row %d has %d cells, want %d", fi, y, len(row), in.Cols)
			}
			for x, cell := range row {
				ch, size := utf8.DecodeRuneInString(cell.Ch)
				if size == 0 || size != len(cell.Ch) {
					return nil, fmt.Errorf("frame %d cell (%d,%d) has invalid character %q", fi, x, y, cell.Ch)
				}
				res := ChunkResult{Char: ch}
				if cell.RGB != nil {
					res.Color = RGB{R: cell.RGB[0], G: cell.RGB[1], B: cell.RGB[2]}
				}
				frame.Cells[y*in.Cols+x] = res
			}
		}
		a.Frames[fi] = frame
	}

	return a, nil
}

// WriteAnimationFile writes the animation to path as JSON, compressed
// with zstd when the path ends in .zst.
func WriteAnimationFile(path string, a *Animation, withColor bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if err := EncodeAnimation(zw, a, withColor); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}

	return EncodeAnimation(f, a, withColor)
}

// ReadAnimationFile reads an animation written by WriteAnimationFile,
// decompressing paths that end in .zst.
func ReadAnimationFile(path string) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		return DecodeAnimation(zr)
	}

	return DecodeAnimation(f)
}
