package imageutil

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
)

// DecodeGIF decodes an animated GIF into a Sequence. Frames are
// composited onto the logical screen so each output frame is a full
// image, honoring the per-frame disposal method.
func DecodeGIF(r io.Reader) (*Sequence, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	width, height := g.Config.Width, g.Config.Height
	if width == 0 || height == 0 {
		b := g.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	seq := &Sequence{
		Frames: make([]*RGBAImage, 0, len(g.Image)),
		Delays: make([]int, 0, len(g.Image)),
	}

	for i, frame := range g.Image {
		var saved []uint8
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			saved = make([]uint8, len(canvas.Pix))
			copy(saved, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		out := NewRGBAImage(width, height)
		copy(out.Pix, canvas.Pix)
		seq.Frames = append(seq.Frames, out)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		seq.Delays = append(seq.Delays, delay)

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				copy(canvas.Pix, saved)
			}
		}
	}

	return seq, nil
}

// EncodeGIF encodes frames as an infinitely looping animated GIF at the
// given frame rate. Each frame is quantized to the Plan9 palette with
// Floyd-Steinberg dithering.
func EncodeGIF(w io.Writer, frames []image.Image, fps float64) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if fps <= 0 {
		fps = 30
	}
	delay := int(math.Round(100 / fps))
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		bounds := frame.Bounds()
		pal := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, bounds, frame, bounds.Min)
		out.Image = append(out.Image, pal)
		out.Delay = append(out.Delay, delay)
	}

	return gif.EncodeAll(w, out)
}
