// Package glyphcast converts images and animations into grids of font
// glyphs. A Converter pairs a font with an alphabet, scores each block
// of source pixels against every glyph with a pluggable metric, and
// emits frames that can be rendered as ANSI text, interchange JSON, or
// re-rendered bitmaps and GIFs.
package glyphcast

import "glyphcast/imageutil"

// ConvertFile loads a still or animated image from a local path and
// converts it with the given options.
func ConvertFile(path string, opts ...ConverterOption) (*Animation, error) {
	conv, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	seq, err := imageutil.LoadSequence(path)
	if err != nil {
		return nil, err
	}
	return conv.ConvertSequence(seq)
}
