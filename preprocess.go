package glyphcast

import (
	"math"

	"glyphcast/imageutil"
)

// gridDims computes the glyph grid for a source image and a target
// pixel width. Columns come from integer division of the target width
// by the glyph width; rows preserve the source aspect ratio at that
// width, rounded to the nearest whole row with a minimum of one.
func gridDims(srcW, srcH, width, glyphW, glyphH int) (cols, rows int, err error) {
	if srcW < glyphW || srcH < glyphH {
		return 0, 0, &UnderflowDimensionsError{
			Width:       srcW,
			Height:      srcH,
			GlyphWidth:  glyphW,
			GlyphHeight: glyphH,
		}
	}

	cols = width / glyphW
	if cols < 1 {
		scaledH := int(math.Round(float64(srcH) * float64(width) / float64(srcW)))
		return 0, 0, &UnderflowDimensionsError{
			Width:       width,
			Height:      scaledH,
			GlyphWidth:  glyphW,
			GlyphHeight: glyphH,
		}
	}

	targetH := float64(srcH) * float64(width) / float64(srcW)
	rows = int(math.Round(targetH / float64(glyphH)))
	if rows < 1 {
		rows = 1
	}
	return cols, rows, nil
}

// preprocessFrame resizes a frame to an exact multiple of the glyph
// cell and cuts it into row-major chunks. Edge assistance sharpens the
// frame before luminance sampling and, for metrics that consume it,
// derives a smoothed gradient magnitude plane. The brightness offset
// is subtracted from every sampled luminance and the result clamped to
// [0, 255]; chunk colors are sampled before sharpening.
func preprocessFrame(img *imageutil.RGBAImage, set *GlyphSet, width int, offset float64, edges bool) ([]PixelChunk, int, int, error) {
	glyphW, glyphH := set.font.GlyphWidth(), set.font.GlyphHeight()
	cols, rows, err := gridDims(img.Width(), img.Height(), width, glyphW, glyphH)
	if err != nil {
		return nil, 0, 0, err
	}

	resized := imageutil.Resize(img, cols*glyphW, rows*glyphH, imageutil.InterpolationArea)

	sampled := resized
	if edges {
		sampled = imageutil.Sharpen(resized)
	}
	lum := imageutil.ToGrayscaleFloat(sampled)

	var grad [][]float64
	if edges && set.metric.features()&featGradient != 0 {
		smoothed := imageutil.ConvolvePlane(lum, imageutil.GaussianKernel3x3())
		grad = imageutil.SobelMagnitudePlane(smoothed)
		for y := range grad {
			for x := range grad[y] {
				grad[y][x] /= imageutil.SobelMax
			}
		}
	}

	cell := glyphW * glyphH
	chunks := make([]PixelChunk, 0, cols*rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cl := make([]float64, 0, cell)
			var cg []float64
			if grad != nil {
				cg = make([]float64, 0, cell)
			}
			colors := make([]RGB, 0, cell)

			for y := cy * glyphH; y < (cy+1)*glyphH; y++ {
				for x := cx * glyphW; x < (cx+1)*glyphW; x++ {
					l := lum[y][x] - offset
					if l < 0 {
						l = 0
					} else if l > 255 {
						l = 255
					}
					cl = append(cl, l)
					if cg != nil {
						cg = append(cg, grad[y][x])
					}
					colors = append(colors, resized.GetRGB(x, y))
				}
			}

			chunks = append(chunks, newPixelChunk(cy*cols+cx, cl, cg, colors))
		}
	}
	return chunks, cols, rows, nil
}
