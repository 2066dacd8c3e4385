package glyphcast

import (
	"math"
	"sync"
)

// Palette256 maps arbitrary colors to indices of a fixed palette using
// a kd-tree for nearest-neighbor lookup.
type Palette256 struct {
	tree  *colorNode
	index map[RGB]uint8
}

// NewPalette256 builds a palette from at most 256 colors. When a color
// appears more than once, the first occurrence keeps its index.
func NewPalette256(colors []RGB) *Palette256 {
	p := &Palette256{index: make(map[RGB]uint8, len(colors))}
	unique := make([]RGB, 0, len(colors))
	for i, c := range colors {
		if _, seen := p.index[c]; !seen {
			p.index[c] = uint8(i)
			unique = append(unique, c)
		}
	}
	p.tree = buildKDTree(unique)
	return p
}

// Nearest returns the palette index of the color closest to c by
// squared euclidean distance. Exact palette colors bypass the tree.
func (p *Palette256) Nearest(c RGB) uint8 {
	if idx, ok := p.index[c]; ok {
		return idx
	}
	if p.tree == nil {
		return 0
	}
	best, _ := p.tree.nearestNeighbor(c, p.tree.Color, math.Inf(1))
	return p.index[best]
}

var (
	xtermOnce sync.Once
	xtermPal  *Palette256
)

// XTermPalette returns the shared xterm 256-color palette, built on
// first use.
func XTermPalette() *Palette256 {
	xtermOnce.Do(func() {
		xtermPal = NewPalette256(xterm256Colors())
	})
	return xtermPal
}

// xterm256Colors returns the xterm 256-color palette: 16 base colors,
// a 6x6x6 color cube, and a 24-step grayscale ramp.
func xterm256Colors() []RGB {
	colors := make([]RGB, 0, 256)

	base := []RGB{
		{R: 0, G: 0, B: 0}, {R: 128, G: 0, B: 0}, {R: 0, G: 128, B: 0}, {R: 128, G: 128, B: 0},
		{R: 0, G: 0, B: 128}, {R: 128, G: 0, B: 128}, {R: 0, G: 128, B: 128}, {R: 192, G: 192, B: 192},
		{R: 128, G: 128, B: 128}, {R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}, {R: 255, G: 255, B: 0},
		{R: 0, G: 0, B: 255}, {R: 255, G: 0, B: 255}, {R: 0, G: 255, B: 255}, {R: 255, G: 255, B: 255},
	}
	colors = append(colors, base...)

	levels := []uint8{0, 95, 135, 175, 215, 255}
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				colors = append(colors, RGB{R: r, G: g, B: b})
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		colors = append(colors, RGB{R: v, G: v, B: v})
	}

	return colors
}
