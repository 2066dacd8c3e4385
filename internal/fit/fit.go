// Package fit scales source frames to a pixel budget before conversion,
// preserving aspect ratio. The player uses it to size animations to the
// terminal window.
package fit

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/qeesung/image2ascii/convert"
)

// Fitter computes the largest size that fits a budget while keeping the
// source aspect ratio, and rescales frames to it.
type Fitter struct {
	resizeHandler *convert.ImageResizeHandler
}

// NewFitter returns a Fitter ready for use.
func NewFitter() *Fitter {
	return &Fitter{
		resizeHandler: convert.NewResizeHandler().(*convert.ImageResizeHandler),
	}
}

// Size returns the dimensions img would be scaled to inside a w x h
// pixel budget.
func (f *Fitter) Size(img image.Image, w, h int) (int, int) {
	b := img.Bounds()
	return f.resizeHandler.CalcFitSize(
		float64(w), float64(h),
		float64(b.Dx()), float64(b.Dy()))
}

// Fit returns img rescaled to fill a w x h pixel budget. Images already
// at the fitted size are returned unchanged.
func (f *Fitter) Fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	neww, newh := f.Size(img, w, h)
	if neww == b.Dx() && newh == b.Dy() {
		return img
	}
	return resize.Resize(uint(neww), uint(newh), img, resize.Lanczos3)
}

// FitAll rescales every frame to the size chosen for the first one, so
// a sequence keeps a single grid after conversion.
func (f *Fitter) FitAll(frames []image.Image, w, h int) []image.Image {
	if len(frames) == 0 {
		return frames
	}
	neww, newh := f.Size(frames[0], w, h)
	out := make([]image.Image, len(frames))
	for i, frame := range frames {
		b := frame.Bounds()
		if b.Dx() == neww && b.Dy() == newh {
			out[i] = frame
			continue
		}
		out[i] = resize.Resize(uint(neww), uint(newh), frame, resize.Lanczos3)
	}
	return out
}
