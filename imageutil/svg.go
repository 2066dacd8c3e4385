package imageutil

import (
	"fmt"
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// svgScale oversamples the SVG view box so fine strokes survive the
// later downscale to the glyph grid.
const svgScale = 2.0

// DecodeSVG rasterizes an SVG document into an RGBA image at twice its
// view box size.
func DecodeSVG(r io.Reader) (*RGBAImage, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	width := int(icon.ViewBox.W * svgScale)
	height := int(icon.ViewBox.H * svgScale)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg has empty view box")
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return &RGBAImage{RGBA: img}, nil
}
