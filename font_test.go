package glyphcast

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinFontDimensions(t *testing.T) {
	t.Parallel()

	alphabet, err := LoadAlphabet("minimal")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		w, h int
	}{
		{"inconsolata", 8, 16},
		{"inconsolata-bold", 8, 16},
		{"fixed", 7, 13},
	}
	for _, tt := range tests {
		font, err := LoadFont(tt.name, alphabet)
		if err != nil {
			t.Fatalf("LoadFont(%q) failed: %v", tt.name, err)
		}
		if font.GlyphWidth() != tt.w || font.GlyphHeight() != tt.h {
			t.Errorf("Font %q cell is %dx%d, want %dx%d",
				tt.name, font.GlyphWidth(), font.GlyphHeight(), tt.w, tt.h)
		}
		if font.Name() != tt.name {
			t.Errorf("Font name = %q, want %q", font.Name(), tt.name)
		}
	}
}

func TestBuiltinFontInk(t *testing.T) {
	t.Parallel()

	alphabet, err := LoadAlphabet("minimal")
	if err != nil {
		t.Fatal(err)
	}
	font, err := LoadFont("inconsolata", alphabet)
	if err != nil {
		t.Fatal(err)
	}

	space, ok := font.Glyph(' ')
	if !ok {
		t.Fatal("Font should carry the space glyph")
	}
	if space.Count() != 0 {
		t.Errorf("Space glyph has %d ink pixels, want 0", space.Count())
	}

	at, ok := font.Glyph('@')
	if !ok {
		t.Fatal("Font should carry the @ glyph")
	}
	if at.Count() == 0 {
		t.Error("@ glyph should have ink pixels")
	}

	dot, _ := font.Glyph('.')
	if dot.Count() >= at.Count() {
		t.Errorf("'.' ink (%d) should be sparser than '@' ink (%d)", dot.Count(), at.Count())
	}
}

func TestNewFontValidation(t *testing.T) {
	t.Parallel()

	glyphs := map[rune]Bitmap{'a': NewBitmap(4, 4)}

	if _, err := NewFont("bad", 0, 4, glyphs); err == nil {
		t.Error("Expected error for zero cell width")
	}
	if _, err := NewFont("bad", 4, 4, map[rune]Bitmap{}); err == nil {
		t.Error("Expected error for empty glyph map")
	}
	if _, err := NewFont("bad", 8, 8, glyphs); err == nil {
		t.Error("Expected error for mismatched glyph size")
	}
	if _, err := NewFont("good", 4, 4, glyphs); err != nil {
		t.Errorf("Valid font rejected: %v", err)
	}
}

func TestLoadFontUnknown(t *testing.T) {
	t.Parallel()

	alphabet, err := LoadAlphabet("minimal")
	if err != nil {
		t.Fatal(err)
	}

	_, err = LoadFont("no-such-font", alphabet)
	if err == nil {
		t.Fatal("Expected error for unknown font name")
	}
	if !strings.Contains(err.Error(), "inconsolata") {
		t.Errorf("Error should list built-in names, got: %v", err)
	}

	if _, err := LoadFont("missing.ttf", alphabet); err == nil {
		t.Error("Expected error for missing ttf file")
	}
	if _, err := LoadFont("missing.bdf", alphabet); err == nil {
		t.Error("Expected error for missing bdf file")
	}
}

// minimalBDF is a two-character 8x8 bitmap font in BDF source form.
const minimalBDF = `STARTFONT 2.1
FONT test8
SIZE 8 75 75
FONTBOUNDINGBOX 8 8 0 -2
STARTPROPERTIES 2
FONT_ASCENT 6
FONT_DESCENT 2
ENDPROPERTIES
CHARS 2
STARTCHAR space
ENCODING 32
SWIDTH 500 0
DWIDTH 8 0
BBX 1 1 0 0
BITMAP
00
ENDCHAR
STARTCHAR block
ENCODING 35
SWIDTH 500 0
DWIDTH 8 0
BBX 8 6 0 0
BITMAP
FF
FF
FF
FF
FF
FF
ENDCHAR
ENDFONT
`

func TestLoadBDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test8.bdf")
	if err := os.WriteFile(path, []byte(minimalBDF), 0o644); err != nil {
		t.Fatal(err)
	}

	alphabet, err := ParseAlphabet(" #")
	if err != nil {
		t.Fatal(err)
	}

	font, err := LoadFont(path, alphabet)
	if err != nil {
		t.Fatalf("LoadFont(bdf) failed: %v", err)
	}
	if font.Name() != "test8" {
		t.Errorf("Font name = %q, want %q", font.Name(), "test8")
	}
	if font.GlyphWidth() != 8 || font.GlyphHeight() != 8 {
		t.Fatalf("Cell is %dx%d, want 8x8", font.GlyphWidth(), font.GlyphHeight())
	}

	space, ok := font.Glyph(' ')
	if !ok || space.Count() != 0 {
		t.Errorf("Space glyph should exist with no ink, got ok=%t count=%d", ok, space.Count())
	}
	block, ok := font.Glyph('#')
	if !ok {
		t.Fatal("# glyph should exist")
	}
	if block.Count() != 48 {
		t.Errorf("# glyph has %d ink pixels, want 48", block.Count())
	}
}

func TestLoadBDFMissingGlyph(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test8.bdf")
	if err := os.WriteFile(path, []byte(minimalBDF), 0o644); err != nil {
		t.Fatal(err)
	}

	alphabet, err := ParseAlphabet(" #@")
	if err != nil {
		t.Fatal(err)
	}

	_, err = LoadFont(path, alphabet)
	var missing *MissingGlyphError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingGlyphError, got %v", err)
	}
	if missing.Char != '@' {
		t.Errorf("Missing char = %q, want '@'", string(missing.Char))
	}
}

func TestFontNames(t *testing.T) {
	t.Parallel()

	names := FontNames()
	want := []string{"fixed", "inconsolata", "inconsolata-bold"}
	if len(names) != len(want) {
		t.Fatalf("FontNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("FontNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFontNameFromPath(t *testing.T) {
	t.Parallel()

	if got := fontName("/tmp/fonts/bitocra-13.bdf"); got != "bitocra-13" {
		t.Errorf("fontName = %q, want %q", got, "bitocra-13")
	}
}
