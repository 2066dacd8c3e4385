package glyphcast

// PixelChunk is one glyph-sized tile of a preprocessed frame, carrying
// exactly the features the metrics consume.
type PixelChunk struct {
	// Index is the chunk's position in row-major grid order.
	Index int

	// Lum holds the brightness-adjusted luminance of each pixel,
	// row-major, in [0, 255].
	Lum []float64

	// Grad holds the normalized gradient magnitude of each pixel, or
	// nil when the metric does not consume the edge map.
	Grad []float64

	// Colors holds the source color of each pixel, sampled before
	// sharpening.
	Colors []RGB

	meanLum float64
}

func newPixelChunk(index int, lum, grad []float64, colors []RGB) PixelChunk {
	var sum float64
	for _, l := range lum {
		sum += l
	}
	mean := 0.0
	if len(lum) > 0 {
		mean = sum / float64(len(lum))
	}
	return PixelChunk{Index: index, Lum: lum, Grad: grad, Colors: colors, meanLum: mean}
}

// MeanLum returns the mean adjusted luminance of the chunk.
func (c *PixelChunk) MeanLum() float64 { return c.meanLum }

// AverageColor returns the mean source color of the chunk.
func (c *PixelChunk) AverageColor() RGB {
	n := len(c.Colors)
	if n == 0 {
		return RGB{}
	}
	var r, g, b int
	for _, col := range c.Colors {
		r += int(col.R)
		g += int(col.G)
		b += int(col.B)
	}
	return RGB{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
	}
}
