package imageutil

// ToGrayscaleFloat converts an RGBA image to a grayscale plane of
// floating-point values in the range [0, 255], using the BT.601
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B.
func ToGrayscaleFloat(img *RGBAImage) [][]float64 {
	width, height := img.Width(), img.Height()
	gray := make([][]float64, height)

	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			gray[y][x] = 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		}
	}

	return gray
}
