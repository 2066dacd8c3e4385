package glyphcast

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"glyphcast/imageutil"
)

// RenderImage rasterizes a glyph frame back to pixels using the font's
// own bitmaps. Each glyph cell is drawn at an integer scale, ink in
// the cell's color on a black ground; without color all ink is white.
// Characters the font cannot render fail with a MissingGlyphError.
func RenderImage(frame *AsciiFrame, font *Font, scale int, withColor bool) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}
	gw, gh := font.GlyphWidth(), font.GlyphHeight()

	img := image.NewRGBA(image.Rect(0, 0, frame.Cols*gw*scale, frame.Rows*gh*scale))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < frame.Rows; y++ {
		for x := 0; x < frame.Cols; x++ {
			cell := frame.At(x, y)
			bm, ok := font.Glyph(cell.Char)
			if !ok {
				return nil, &MissingGlyphError{Char: cell.Char, Font: font.Name()}
			}

			fg := white
			if withColor {
				fg = cell.Color.ToColor()
			}
			renderGlyphBitmap(img, bm, x*gw*scale, y*gh*scale, scale, fg)
		}
	}
	return img, nil
}

// renderGlyphBitmap draws the ink pixels of a glyph bitmap at the
// given origin and scale.
func renderGlyphBitmap(img *image.RGBA, bm Bitmap, x0, y0, scale int, fg color.RGBA) {
	for gy := 0; gy < bm.H; gy++ {
		for gx := 0; gx < bm.W; gx++ {
			if !bm.Get(gx, gy) {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetRGBA(x0+gx*scale+sx, y0+gy*scale+sy, fg)
				}
			}
		}
	}
}

// RenderGIF rasterizes every frame of an animation and encodes the
// result as a looping GIF at the animation's frame rate.
func RenderGIF(w io.Writer, a *Animation, font *Font, scale int, withColor bool) error {
	frames := make([]image.Image, len(a.Frames))
	for i, frame := range a.Frames {
		img, err := RenderImage(frame, font, scale, withColor)
		if err != nil {
			return err
		}
		frames[i] = img
	}
	return imageutil.EncodeGIF(w, frames, a.FPS)
}
