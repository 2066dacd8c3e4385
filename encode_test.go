package glyphcast

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// testAnimation builds a two-frame 2x1 animation with distinct colors,
// including a multi-byte character.
func testAnimation() *Animation {
	frame := func(chars string, colors []RGB) *AsciiFrame {
		f := &AsciiFrame{Cols: 2, Rows: 1, Cells: make([]ChunkResult, 0, 2)}
		for _, ch := range chars {
			f.Cells = append(f.Cells, ChunkResult{Char: ch, Color: colors[len(f.Cells)]})
		}
		return f
	}
	return &Animation{
		FPS:  24,
		Cols: 2,
		Rows: 1,
		Frames: []*AsciiFrame{
			frame("█.", []RGB{{R: 255}, {G: 128}}),
			frame(" #", []RGB{{B: 9}, {R: 1, G: 2, B: 3}}),
		},
	}
}

func TestAnimationRoundTripWithColor(t *testing.T) {
	t.Parallel()

	anim := testAnimation()
	var buf bytes.Buffer
	if err := EncodeAnimation(&buf, anim, true); err != nil {
		t.Fatalf("EncodeAnimation failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"ch"`) {
		t.Error("Encoded animation should carry per-cell characters")
	}
	if !strings.Contains(out, `"rgb"`) {
		t.Error("Color encoding should carry per-cell color triples")
	}

	got, err := DecodeAnimation(&buf)
	if err != nil {
		t.Fatalf("DecodeAnimation failed: %v", err)
	}
	if !reflect.DeepEqual(anim, got) {
		t.Error("Round-tripped animation differs from the original")
	}
}

func TestAnimationRoundTripWithoutColor(t *testing.T) {
	t.Parallel()

	anim := testAnimation()
	var buf bytes.Buffer
	if err := EncodeAnimation(&buf, anim, false); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"rgb"`) {
		t.Error("Colorless encoding should drop the color triples")
	}

	got, err := DecodeAnimation(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for fi, frame := range got.Frames {
		for i, cell := range frame.Cells {
			if cell.Char != anim.Frames[fi].Cells[i].Char {
				t.Errorf("Frame %d cell %d = %q, want %q", fi, i, string(cell.Char), string(anim.Frames[fi].Cells[i].Char))
			}
			if cell.Color != (RGB{}) {
				t.Errorf("Frame %d cell %d has color %+v, want zero", fi, i, cell.Color)
			}
		}
	}
}

func TestDecodeAnimationRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not json", "plain text", "decode"},
		{"zero cols", `{"fps":30,"cols":0,"rows":1,"frames":[[[{"ch":"a"}]]]}`, "invalid"},
		{"no frames", `{"fps":30,"cols":1,"rows":1,"frames":[]}`, "no frames"},
		{"zero fps", `{"fps":0,"cols":1,"rows":1,"frames":[[[{"ch":"a"}]]]}`, "fps"},
		{"row count", `{"fps":30,"cols":1,"rows":2,"frames":[[[{"ch":"a"}]]]}`, "rows"},
		{"cell count", `{"fps":30,"cols":2,"rows":1,"frames":[[[{"ch":"a"}]]]}`, "cells"},
		{"multi-rune cell", `{"fps":30,"cols":1,"rows":1,"frames":[[[{"ch":"ab"}]]]}`, "character"},
		{"empty cell", `{"fps":30,"cols":1,"rows":1,"frames":[[[{"ch":""}]]]}`, "character"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeAnimation(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("Expected decode error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestAnimationFileRoundTrip(t *testing.T) {
	t.Parallel()

	anim := testAnimation()
	path := filepath.Join(t.TempDir(), "clip.json")
	if err := WriteAnimationFile(path, anim, true); err != nil {
		t.Fatalf("WriteAnimationFile failed: %v", err)
	}

	got, err := ReadAnimationFile(path)
	if err != nil {
		t.Fatalf("ReadAnimationFile failed: %v", err)
	}
	if !reflect.DeepEqual(anim, got) {
		t.Error("File round trip changed the animation")
	}
}

func TestAnimationFileZstd(t *testing.T) {
	t.Parallel()

	anim := testAnimation()
	path := filepath.Join(t.TempDir(), "clip.json.zst")
	if err := WriteAnimationFile(path, anim, true); err != nil {
		t.Fatalf("WriteAnimationFile failed: %v", err)
	}

	// Compressed files start with the zstd frame magic.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	magic := []byte{0x28, 0xB5, 0x2F, 0xFD}
	if len(raw) < 4 || !bytes.Equal(raw[:4], magic) {
		t.Fatalf("File does not start with the zstd magic, got % x", raw[:min(4, len(raw))])
	}

	got, err := ReadAnimationFile(path)
	if err != nil {
		t.Fatalf("ReadAnimationFile failed: %v", err)
	}
	if !reflect.DeepEqual(anim, got) {
		t.Error("Compressed round trip changed the animation")
	}
}
