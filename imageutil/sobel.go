package imageutil

import "math"

// SobelMax is the largest gradient magnitude the Sobel operator can
// produce on an 8-bit plane: both kernels sum to 4*255 on a maximal
// step, so the magnitude peaks at 1020*sqrt(2).
const SobelMax = 1020 * math.Sqrt2

// sobelKernelX detects horizontal intensity changes.
func sobelKernelX() *Kernel {
	return NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// sobelKernelY detects vertical intensity changes.
func sobelKernelY() *Kernel {
	return NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// SobelMagnitudePlane computes the gradient magnitude of a float64
// luminance plane. The result has the same dimensions as the input and
// values in [0, SobelMax].
func SobelMagnitudePlane(plane [][]float64) [][]float64 {
	height := len(plane)
	if height == 0 {
		return nil
	}
	width := len(plane[0])

	gx := ConvolvePlane(plane, sobelKernelX())
	gy := ConvolvePlane(plane, sobelKernelY())

	mag := make([][]float64, height)
	for y := 0; y < height; y++ {
		mag[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			mag[y][x] = math.Sqrt(gx[y][x]*gx[y][x] + gy[y][x]*gy[y][x])
		}
	}

	return mag
}
