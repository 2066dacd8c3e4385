package glyphcast

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/zachomedia/go-bdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

const (
	// ttfPointSize is the point size scalable fonts are rasterized at.
	// At 72 DPI one point equals one pixel.
	ttfPointSize = 16

	// inkThreshold is the alpha value above which an anti-aliased
	// pixel counts as ink.
	inkThreshold = 64
)

// builtinFaces maps built-in font names to their pre-rendered faces.
var builtinFaces = map[string]*basicfont.Face{
	"inconsolata":      inconsolata.Regular8x16,
	"inconsolata-bold": inconsolata.Bold8x16,
	"fixed":            basicfont.Face7x13,
}

// Font is a fixed-cell font restricted to the characters of one
// alphabet. Every glyph is a W x H ink bitmap; W and H are uniform
// across the font.
type Font struct {
	name   string
	w, h   int
	glyphs map[rune]Bitmap
}

// NewFont builds a Font from pre-rendered glyph bitmaps. All bitmaps
// must share the w x h cell size.
func NewFont(name string, w, h int, glyphs map[rune]Bitmap) (*Font, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("font %q has invalid cell size %dx%d", name, w, h)
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("font %q has no glyphs", name)
	}
	for r, bm := range glyphs {
		if bm.W != w || bm.H != h {
			return nil, fmt.Errorf("font %q glyph %q is %dx%d, want %dx%d",
				name, string(r), bm.W, bm.H, w, h)
		}
	}
	return &Font{name: name, w: w, h: h, glyphs: glyphs}, nil
}

// LoadFont resolves nameOrPath against the built-in font names first,
// then treats it as a path to a BDF or TrueType font file. The font is
// restricted to the characters of the alphabet; a character the font
// cannot render is a MissingGlyphError.
func LoadFont(nameOrPath string, alphabet *Alphabet) (*Font, error) {
	if face, ok := builtinFaces[nameOrPath]; ok {
		return FontFromFace(face, nameOrPath, alphabet)
	}

	switch strings.ToLower(filepath.Ext(nameOrPath)) {
	case ".bdf":
		return LoadBDF(nameOrPath, alphabet)
	case ".ttf", ".otf":
		return LoadTTF(nameOrPath, alphabet)
	}
	return nil, fmt.Errorf("font %q is neither built-in nor a .bdf/.ttf file (built-ins: %s)",
		nameOrPath, strings.Join(FontNames(), ", "))
}

// LoadBDF loads a BDF bitmap font from path and restricts it to the
// alphabet.
func LoadBDF(path string, alphabet *Alphabet) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := bdf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bdf font: %w", err)
	}
	return FontFromFace(f.NewFace(), fontName(path), alphabet)
}

// LoadTTF loads a TrueType or OpenType font from path, rasterizes it at
// a fixed point size, and restricts it to the alphabet.
func LoadTTF(path string, alphabet *Alphabet) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse truetype font: %w", err)
	}

	name := fontName(path)

	// truetype faces silently substitute the .notdef glyph, so check
	// coverage on the parsed font before rendering.
	for _, r := range alphabet.Chars() {
		if f.Index(r) == 0 {
			return nil, &MissingGlyphError{Char: r, Font: name}
		}
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    ttfPointSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return FontFromFace(face, name, alphabet)
}

// FontFromFace rasterizes the alphabet's characters from a font.Face
// into ink bitmaps. The cell size is derived from the face metrics: the
// width from the glyph advance and the height from ascent plus descent.
// Pixels whose anti-aliased alpha exceeds the ink threshold are set.
func FontFromFace(face font.Face, name string, alphabet *Alphabet) (*Font, error) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	h := ascent + descent
	if h <= 0 {
		return nil, fmt.Errorf("font %q reports zero height", name)
	}

	w := cellWidth(face, alphabet)
	if w <= 0 {
		return nil, fmt.Errorf("font %q reports zero advance", name)
	}

	// Center the glyph body vertically in the cell. With h equal to
	// ascent+descent this puts the baseline exactly at ascent.
	baseline := (h + ascent - descent) / 2

	glyphs := make(map[rune]Bitmap, alphabet.Len())
	for _, r := range alphabet.Chars() {
		if _, _, ok := face.GlyphBounds(r); !ok {
			return nil, &MissingGlyphError{Char: r, Font: name}
		}

		img := image.NewAlpha(image.Rect(0, 0, w, h))
		d := font.Drawer{
			Dst:  img,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(0, baseline),
		}
		d.DrawString(string(r))

		bm := NewBitmap(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if img.AlphaAt(x, y).A > inkThreshold {
					bm.Set(x, y)
				}
			}
		}
		glyphs[r] = bm
	}

	return &Font{name: name, w: w, h: h, glyphs: glyphs}, nil
}

// cellWidth probes the face for a representative glyph advance.
func cellWidth(face font.Face, alphabet *Alphabet) int {
	for _, r := range []rune{'M', '0', 'A', ' '} {
		if adv, ok := face.GlyphAdvance(r); ok && adv > 0 {
			return adv.Ceil()
		}
	}
	for _, r := range alphabet.Chars() {
		if adv, ok := face.GlyphAdvance(r); ok && adv > 0 {
			return adv.Ceil()
		}
	}
	return 0
}

// FontNames returns the names of the built-in fonts, sorted.
func FontNames() []string {
	names := make([]string, 0, len(builtinFaces))
	for name := range builtinFaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fontName derives a font name from a file path.
func fontName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Name returns the font name.
func (f *Font) Name() string { return f.name }

// GlyphWidth returns the glyph cell width in pixels.
func (f *Font) GlyphWidth() int { return f.w }

// GlyphHeight returns the glyph cell height in pixels.
func (f *Font) GlyphHeight() int { return f.h }

// Glyph returns the ink bitmap for r and whether the font carries it.
func (f *Font) Glyph(r rune) (Bitmap, bool) {
	bm, ok := f.glyphs[r]
	return bm, ok
}
