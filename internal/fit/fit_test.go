package fit

import (
	"image"
	"testing"
)

func TestSizeKeepsAspectRatio(t *testing.T) {
	t.Parallel()

	f := NewFitter()
	tests := []struct {
		imgW, imgH int
		w, h       int
		wantW      int
		wantH      int
	}{
		// Width-bound downscale.
		{100, 50, 50, 50, 50, 25},
		{64, 64, 16, 32, 16, 16},
		// Height-bound downscale.
		{50, 100, 50, 50, 25, 50},
		// Already inside the budget at the same aspect.
		{10, 10, 10, 10, 10, 10},
	}
	for _, tt := range tests {
		img := image.NewRGBA(image.Rect(0, 0, tt.imgW, tt.imgH))
		gotW, gotH := f.Size(img, tt.w, tt.h)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("Size(%dx%d into %dx%d) = %dx%d, want %dx%d",
				tt.imgW, tt.imgH, tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestFitReturnsSameImageWhenSized(t *testing.T) {
	t.Parallel()

	f := NewFitter()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if got := f.Fit(img, 10, 10); got != image.Image(img) {
		t.Error("An image already at the fitted size should be returned unchanged")
	}
}

func TestFitRescales(t *testing.T) {
	t.Parallel()

	f := NewFitter()
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	got := f.Fit(img, 50, 50)
	if b := got.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("Fitted image is %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}

func TestFitAllUsesFirstFrameSize(t *testing.T) {
	t.Parallel()

	f := NewFitter()
	frames := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 8, 8)),
		image.NewRGBA(image.Rect(0, 0, 16, 16)),
	}

	out := f.FitAll(frames, 8, 8)
	if len(out) != 2 {
		t.Fatalf("FitAll returned %d frames, want 2", len(out))
	}
	// The first frame already fits and passes through untouched; the
	// rest are forced onto its grid.
	if out[0] != frames[0] {
		t.Error("First frame should pass through unchanged")
	}
	for i, frame := range out {
		if b := frame.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
			t.Errorf("Frame %d is %dx%d, want 8x8", i, b.Dx(), b.Dy())
		}
	}

	if got := f.FitAll(nil, 8, 8); len(got) != 0 {
		t.Errorf("FitAll(nil) returned %d frames, want none", len(got))
	}
}
