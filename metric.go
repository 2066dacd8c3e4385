package glyphcast

import "math"

// featureSet records which chunk features a metric consumes, so the
// preprocessor and glyph set only compute what the chosen metric needs.
type featureSet uint8

const (
	featMean featureSet = 1 << iota
	featInk
	featGradient
)

// Metric scores how well a glyph reproduces a pixel chunk. Score
// returns a raw score and Better orders two scores, so metrics can
// treat either low or high values as wins. The set of metrics is
// closed; features is unexported to keep it that way.
type Metric interface {
	// Name returns the metric's registry name.
	Name() string

	// Score rates glyph g against chunk c.
	Score(c *PixelChunk, g *Glyph) float64

	// Better reports whether score a is strictly better than score b.
	Better(a, b float64) bool

	features() featureSet
}

// darkness maps a luminance in [0, 255] to ink coverage in [0, 1],
// where 1 is fully dark.
func darkness(lum float64) float64 {
	return (255 - lum) / 255
}

// GradMetric compares per-pixel gradient magnitude profiles alongside
// per-pixel intensity. It is the slowest metric and the default, and
// the only one that consumes the edge map.
type GradMetric struct{}

// Name returns "grad".
func (GradMetric) Name() string { return "grad" }

// Score returns the mean per-pixel sum of gradient difference and
// intensity difference. Lower is better. Chunks without a gradient
// plane fall back to the intensity term alone.
func (GradMetric) Score(c *PixelChunk, g *Glyph) float64 {
	var sum float64
	if c.Grad == nil {
		for i, lum := range c.Lum {
			sum += math.Abs(darkness(lum) - g.Ink[i])
		}
	} else {
		for i, lum := range c.Lum {
			sum += math.Abs(c.Grad[i]-g.Grad[i]) + math.Abs(darkness(lum)-g.Ink[i])
		}
	}
	return sum / float64(len(c.Lum))
}

// Better prefers lower scores.
func (GradMetric) Better(a, b float64) bool { return a < b }

func (GradMetric) features() featureSet { return featInk | featGradient }

// FastMetric compares only the mean brightness of chunk and glyph. It
// ignores glyph shape entirely, which makes it the cheapest metric.
type FastMetric struct{}

// Name returns "fast".
func (FastMetric) Name() string { return "fast" }

// Score returns the absolute difference of mean luminances. Lower is
// better.
func (FastMetric) Score(c *PixelChunk, g *Glyph) float64 {
	return math.Abs(c.MeanLum() - g.MeanLum)
}

// Better prefers lower scores.
func (FastMetric) Better(a, b float64) bool { return a < b }

func (FastMetric) features() featureSet { return featMean }

// DotMetric rewards glyphs whose ink lands on dark chunk pixels. The
// raw dot product is normalized by the square root of the glyph's ink
// mass so dense glyphs do not win on area alone.
type DotMetric struct{}

// Name returns "dot".
func (DotMetric) Name() string { return "dot" }

// Score returns the normalized dot product of chunk darkness and glyph
// ink. Higher is better. Glyphs without ink score zero.
func (DotMetric) Score(c *PixelChunk, g *Glyph) float64 {
	if g.InkCount == 0 {
		return 0
	}
	var sum float64
	for i, lum := range c.Lum {
		sum += darkness(lum) * g.Ink[i]
	}
	return sum / math.Sqrt(float64(g.InkCount))
}

// Better prefers higher scores.
func (DotMetric) Better(a, b float64) bool { return a > b }

func (DotMetric) features() featureSet { return featInk }

// JaccardMetric measures the overlap between chunk darkness and glyph
// ink as intersection over union, extended to fractional darkness.
type JaccardMetric struct{}

// Name returns "jaccard".
func (JaccardMetric) Name() string { return "jaccard" }

// Score returns sum(min(darkness, ink)) / sum(max(darkness, ink)).
// Higher is better. When both chunk and glyph are empty the overlap is
// perfect and the score is 1.
func (JaccardMetric) Score(c *PixelChunk, g *Glyph) float64 {
	var num, den float64
	for i, lum := range c.Lum {
		d := darkness(lum)
		num += math.Min(d, g.Ink[i])
		den += math.Max(d, g.Ink[i])
	}
	if den == 0 {
		return 1
	}
	return num / den
}

// Better prefers higher scores.
func (JaccardMetric) Better(a, b float64) bool { return a > b }

func (JaccardMetric) features() featureSet { return featInk }

// OcclusionMetric penalizes darkness the glyph leaves uncovered at full
// weight and ink the glyph places on bright pixels at quarter weight,
// favoring glyphs that under-print rather than over-print.
type OcclusionMetric struct{}

// occlusionExcessWeight discounts ink that overshoots the chunk.
const occlusionExcessWeight = 0.25

// Name returns "occlusion".
func (OcclusionMetric) Name() string { return "occlusion" }

// Score returns uncovered darkness plus weighted excess ink. Lower is
// better.
func (OcclusionMetric) Score(c *PixelChunk, g *Glyph) float64 {
	var uncovered, excess float64
	for i, lum := range c.Lum {
		d := darkness(lum)
		if diff := d - g.Ink[i]; diff > 0 {
			uncovered += diff
		} else {
			excess -= diff
		}
	}
	return uncovered + occlusionExcessWeight*excess
}

// Better prefers lower scores.
func (OcclusionMetric) Better(a, b float64) bool { return a < b }

func (OcclusionMetric) features() featureSet { return featInk }

// ClearMetric penalizes only darkness the glyph leaves uncovered,
// ignoring excess ink entirely. Dense glyphs are never punished, which
// biases output toward heavy coverage.
type ClearMetric struct{}

// Name returns "clear".
func (ClearMetric) Name() string { return "clear" }

// Score returns the uncovered darkness. Lower is better.
func (ClearMetric) Score(c *PixelChunk, g *Glyph) float64 {
	var uncovered float64
	for i, lum := range c.Lum {
		if diff := darkness(lum) - g.Ink[i]; diff > 0 {
			uncovered += diff
		}
	}
	return uncovered
}

// Better prefers lower scores.
func (ClearMetric) Better(a, b float64) bool { return a < b }

func (ClearMetric) features() featureSet { return featInk }

// Metrics returns one instance of every built-in metric in canonical
// order.
func Metrics() []Metric {
	return []Metric{
		GradMetric{},
		FastMetric{},
		DotMetric{},
		JaccardMetric{},
		OcclusionMetric{},
		ClearMetric{},
	}
}

// MetricNames returns the names of the built-in metrics in canonical
// order.
func MetricNames() []string {
	metrics := Metrics()
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = m.Name()
	}
	return names
}

// ParseMetric resolves a metric name to its implementation.
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics() {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, &InvalidMetricNameError{Name: name}
}
