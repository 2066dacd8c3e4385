package glyphcast

// GlyphSet is the intersection of a font and an alphabet, featurized
// for one metric. Building the set is the expensive part of a run and
// happens exactly once; the set itself is immutable and safe for
// concurrent matching.
type GlyphSet struct {
	font   *Font
	metric Metric
	glyphs []Glyph // alphabet order
}

// BuildGlyphSet featurizes every alphabet character from the font for
// the given metric. The first character the font lacks aborts the build
// with a MissingGlyphError.
func BuildGlyphSet(font *Font, alphabet *Alphabet, metric Metric) (*GlyphSet, error) {
	feats := metric.features()
	glyphs := make([]Glyph, 0, alphabet.Len())
	for _, r := range alphabet.Chars() {
		bm, ok := font.Glyph(r)
		if !ok {
			return nil, &MissingGlyphError{Char: r, Font: font.Name()}
		}
		glyphs = append(glyphs, newGlyph(r, bm, feats))
	}
	return &GlyphSet{font: font, metric: metric, glyphs: glyphs}, nil
}

// Font returns the font the set was built from.
func (gs *GlyphSet) Font() *Font { return gs.font }

// Metric returns the metric the set was featurized for.
func (gs *GlyphSet) Metric() Metric { return gs.metric }

// Len returns the number of glyphs in the set.
func (gs *GlyphSet) Len() int { return len(gs.glyphs) }

// BestMatch returns the alphabet character whose glyph scores best
// against the chunk. When a noise source is given, each score is
// perturbed before comparison. Exact ties resolve to the character
// that appears earliest in the alphabet, because only a strictly
// better score replaces the running best.
func (gs *GlyphSet) BestMatch(c *PixelChunk, noise *noiseSource, frame int) rune {
	best := 0
	bestScore := gs.metric.Score(c, &gs.glyphs[0])
	if noise != nil {
		bestScore += noise.perturb(frame, c.Index, 0)
	}

	for i := 1; i < len(gs.glyphs); i++ {
		s := gs.metric.Score(c, &gs.glyphs[i])
		if noise != nil {
			s += noise.perturb(frame, c.Index, i)
		}
		if gs.metric.Better(s, bestScore) {
			best, bestScore = i, s
		}
	}
	return gs.glyphs[best].Char
}
