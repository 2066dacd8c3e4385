package glyphcast

import "math/bits"

// Bitmap is a packed binary raster used for glyph ink coverage. Bits
// are addressed row-major; bit (x, y) lives in word (y*W+x)/64.
type Bitmap struct {
	W, H int
	bits []uint64
}

// NewBitmap creates an empty bitmap with the given dimensions.
func NewBitmap(w, h int) Bitmap {
	return Bitmap{W: w, H: h, bits: make([]uint64, (w*h+63)/64)}
}

// Get returns whether the bit at (x, y) is set. Out-of-range
// coordinates read as unset.
func (b Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	i := y*b.W + x
	return b.bits[i/64]&(1<<uint(i%64)) != 0
}

// Set sets the bit at (x, y). Out-of-range coordinates are ignored.
func (b Bitmap) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	i := y*b.W + x
	b.bits[i/64] |= 1 << uint(i%64)
}

// Count returns the number of set bits.
func (b Bitmap) Count() int {
	n := 0
	for _, w := range b.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Equal reports whether two bitmaps have identical dimensions and bits.
func (b Bitmap) Equal(o Bitmap) bool {
	if b.W != o.W || b.H != o.H {
		return false
	}
	for i := range b.bits {
		if b.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}
