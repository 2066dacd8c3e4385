package glyphcast

// Animation is an ordered list of glyph frames sharing one grid size,
// plus the playback rate the frames were produced for.
type Animation struct {
	FPS    float64
	Cols   int
	Rows   int
	Frames []*AsciiFrame
}
