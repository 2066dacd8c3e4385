package glyphcast

import (
	"fmt"
	"image"
	"time"

	"glyphcast/imageutil"
)

// Defaults for converter options not set explicitly.
const (
	DefaultFont     = "inconsolata"
	DefaultAlphabet = "alphabet"
	DefaultMetric   = "grad"
	DefaultWidth    = 480
	DefaultFPS      = 30.0
)

// Converter turns images and frame sequences into glyph grids. All
// validation is eager: the glyph set is built and the configuration
// checked when the converter is created, so a converter that exists
// can convert.
type Converter struct {
	fontName     string
	alphabetName string
	metricName   string

	width            int
	threads          int
	brightnessOffset float64
	noiseScale       float64
	edgeDetection    bool
	fps              float64
	seed             int64
	seedSet          bool
	onProgress       func(done, total int)

	font     *Font
	alphabet *Alphabet
	metric   Metric
	set      *GlyphSet
	noise    *noiseSource
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithFont sets the font by built-in name or by path to a BDF or
// TrueType file. The default is "inconsolata".
func WithFont(nameOrPath string) ConverterOption {
	return func(c *Converter) {
		c.fontName = nameOrPath
	}
}

// WithCustomFont sets a pre-built font, bypassing name resolution.
func WithCustomFont(f *Font) ConverterOption {
	return func(c *Converter) {
		c.font = f
	}
}

// WithAlphabet sets the alphabet by built-in name or by path to a text
// file. The default is "alphabet", the full printable ASCII set.
func WithAlphabet(nameOrPath string) ConverterOption {
	return func(c *Converter) {
		c.alphabetName = nameOrPath
	}
}

// WithMetric sets the scoring metric by name. The default is "grad".
func WithMetric(name string) ConverterOption {
	return func(c *Converter) {
		c.metricName = name
	}
}

// WithWidth sets the target output width in pixels. Columns are the
// width divided by the glyph width, rounded down. The default is 480.
func WithWidth(px int) ConverterOption {
	return func(c *Converter) {
		c.width = px
	}
}

// WithThreads sets the number of matching workers per frame. Values
// outside [1, chunk count] are clamped. The default is 1.
func WithThreads(n int) ConverterOption {
	return func(c *Converter) {
		c.threads = n
	}
}

// WithBrightnessOffset sets the amount subtracted from every sampled
// luminance before matching. Positive values darken the output.
func WithBrightnessOffset(offset float64) ConverterOption {
	return func(c *Converter) {
		c.brightnessOffset = offset
	}
}

// WithNoiseScale enables score noise with the given magnitude. Noise
// randomizes ties between near-equal glyphs; zero disables it.
func WithNoiseScale(scale float64) ConverterOption {
	return func(c *Converter) {
		c.noiseScale = scale
	}
}

// WithSeed fixes the noise seed so noisy runs reproduce. Without it
// each converter draws a fresh seed from the clock.
func WithSeed(seed int64) ConverterOption {
	return func(c *Converter) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithEdgeDetection toggles edge assistance: sharpening before
// luminance sampling and the gradient plane for metrics that consume
// it. Enabled by default.
func WithEdgeDetection(enabled bool) ConverterOption {
	return func(c *Converter) {
		c.edgeDetection = enabled
	}
}

// WithFPS sets the playback rate recorded on converted animations.
// The default is 30.
func WithFPS(fps float64) ConverterOption {
	return func(c *Converter) {
		c.fps = fps
	}
}

// WithProgress registers a callback invoked after each converted frame
// with the number of frames done and the total.
func WithProgress(fn func(done, total int)) ConverterOption {
	return func(c *Converter) {
		c.onProgress = fn
	}
}

// NewConverter creates a Converter with the given options. The metric
// name, alphabet, font, and glyph coverage are validated here, and the
// glyph set is featurized once for the converter's lifetime.
func NewConverter(opts ...ConverterOption) (*Converter, error) {
	c := &Converter{
		fontName:      DefaultFont,
		alphabetName:  DefaultAlphabet,
		metricName:    DefaultMetric,
		width:         DefaultWidth,
		threads:       1,
		edgeDetection: true,
		fps:           DefaultFPS,
	}
	for _, opt := range opts {
		opt(c)
	}

	metric, err := ParseMetric(c.metricName)
	if err != nil {
		return nil, err
	}
	c.metric = metric

	alphabet, err := LoadAlphabet(c.alphabetName)
	if err != nil {
		return nil, err
	}
	c.alphabet = alphabet

	if c.font == nil {
		font, err := LoadFont(c.fontName, alphabet)
		if err != nil {
			return nil, err
		}
		c.font = font
	}

	set, err := BuildGlyphSet(c.font, alphabet, metric)
	if err != nil {
		return nil, err
	}
	c.set = set

	if c.width < c.font.GlyphWidth() {
		return nil, &UnderflowDimensionsError{
			Width:       c.width,
			Height:      c.font.GlyphHeight(),
			GlyphWidth:  c.font.GlyphWidth(),
			GlyphHeight: c.font.GlyphHeight(),
		}
	}
	if c.fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %g", c.fps)
	}
	if c.noiseScale < 0 {
		return nil, fmt.Errorf("noise scale must not be negative, got %g", c.noiseScale)
	}

	if !c.seedSet {
		c.seed = time.Now().UnixNano()
	}
	if c.noiseScale > 0 {
		c.noise = &noiseSource{seed: uint64(c.seed), scale: c.noiseScale}
	}

	return c, nil
}

// Font returns the resolved font.
func (c *Converter) Font() *Font { return c.font }

// Alphabet returns the resolved alphabet.
func (c *Converter) Alphabet() *Alphabet { return c.alphabet }

// Metric returns the resolved metric.
func (c *Converter) Metric() Metric { return c.metric }

// Seed returns the noise seed in effect for this converter.
func (c *Converter) Seed() int64 { return c.seed }

// FPS returns the playback rate recorded on converted animations.
func (c *Converter) FPS() float64 { return c.fps }

// ConvertImage converts a single image into a glyph frame.
func (c *Converter) ConvertImage(img image.Image) (*AsciiFrame, error) {
	chunks, cols, rows, err := c.preprocess(img)
	if err != nil {
		return nil, err
	}
	return renderFrame(c.set, chunks, cols, rows, c.threads, c.noise, 0)
}

// ConvertFrames converts an animation frame by frame. Every frame's
// glyph grid is validated against the first frame's before any frame
// is converted, so a dimension mismatch costs no matching work and
// produces no partial output.
func (c *Converter) ConvertFrames(frames []image.Image) (*Animation, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to convert")
	}

	glyphW, glyphH := c.font.GlyphWidth(), c.font.GlyphHeight()
	var wantCols, wantRows int
	for i, frame := range frames {
		b := frame.Bounds()
		cols, rows, err := gridDims(b.Dx(), b.Dy(), c.width, glyphW, glyphH)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			wantCols, wantRows = cols, rows
			continue
		}
		if cols != wantCols || rows != wantRows {
			return nil, &InconsistentFrameDimensionsError{
				Frame:    i,
				Cols:     cols,
				Rows:     rows,
				WantCols: wantCols,
				WantRows: wantRows,
			}
		}
	}

	anim := &Animation{
		FPS:    c.fps,
		Cols:   wantCols,
		Rows:   wantRows,
		Frames: make([]*AsciiFrame, 0, len(frames)),
	}
	for i, frame := range frames {
		chunks, cols, rows, err := c.preprocess(frame)
		if err != nil {
			return nil, err
		}
		out, err := renderFrame(c.set, chunks, cols, rows, c.threads, c.noise, i)
		if err != nil {
			return nil, err
		}
		anim.Frames = append(anim.Frames, out)
		if c.onProgress != nil {
			c.onProgress(i+1, len(frames))
		}
	}
	return anim, nil
}

// ConvertSequence converts a decoded image sequence.
func (c *Converter) ConvertSequence(seq *imageutil.Sequence) (*Animation, error) {
	return c.ConvertFrames(seq.Images())
}

func (c *Converter) preprocess(img image.Image) ([]PixelChunk, int, int, error) {
	return preprocessFrame(imageutil.RGBAImageFromImage(img), c.set, c.width, c.brightnessOffset, c.edgeDetection)
}
