package glyphcast

import "glyphcast/imageutil"

// Glyph is one alphabet character pre-featurized for matching. The
// features are derived once per run when the glyph set is built, so
// scoring a chunk against a glyph touches no font machinery.
type Glyph struct {
	Char   rune
	Bitmap Bitmap

	// Ink is the bitmap flattened row-major to 0/1 coverage values.
	Ink []float64

	// InkCount is the number of ink pixels.
	InkCount int

	// MeanLum is the luminance a cell filled with this glyph shows
	// from a distance: 255 with no ink, 0 with full coverage.
	MeanLum float64

	// Grad is the normalized gradient magnitude profile of the glyph,
	// present only when the metric consumes the edge map.
	Grad []float64
}

func newGlyph(char rune, bm Bitmap, feats featureSet) Glyph {
	g := Glyph{Char: char, Bitmap: bm}

	n := bm.W * bm.H
	g.Ink = make([]float64, n)
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if bm.Get(x, y) {
				g.Ink[y*bm.W+x] = 1
				g.InkCount++
			}
		}
	}
	g.MeanLum = 255 * (1 - float64(g.InkCount)/float64(n))

	if feats&featGradient != 0 {
		g.Grad = glyphGradient(bm)
	}
	return g
}

// glyphGradient renders the glyph as dark ink on a white ground and
// measures its Sobel magnitude, normalized to [0, 1] to match the
// chunk-side gradient plane.
func glyphGradient(bm Bitmap) []float64 {
	plane := make([][]float64, bm.H)
	for y := range plane {
		plane[y] = make([]float64, bm.W)
		for x := 0; x < bm.W; x++ {
			if !bm.Get(x, y) {
				plane[y][x] = 255
			}
		}
	}

	mag := imageutil.SobelMagnitudePlane(plane)
	out := make([]float64, bm.W*bm.H)
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			out[y*bm.W+x] = mag[y][x] / imageutil.SobelMax
		}
	}
	return out
}
