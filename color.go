package glyphcast

import "glyphcast/imageutil"

// RGB is the 8-bit color triple carried through the pipeline, from
// chunk sampling to terminal and raster output.
type RGB = imageutil.RGB

// colorDistance returns the squared euclidean distance between two
// colors in RGB space.
func colorDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
