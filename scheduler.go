package glyphcast

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// renderFrame matches every chunk of a preprocessed frame against the
// glyph set. The chunk list is split into contiguous spans, one per
// worker, and each worker writes into the matching span of the
// pre-sized cell slice, so no locking is needed and the output is
// identical for any worker count. The first worker error aborts the
// frame.
func renderFrame(set *GlyphSet, chunks []PixelChunk, cols, rows, workers int, noise *noiseSource, frame int) (*AsciiFrame, error) {
	out := &AsciiFrame{Cols: cols, Rows: rows, Cells: make([]ChunkResult, len(chunks))}

	if workers < 1 {
		workers = 1
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	if workers == 1 {
		if err := matchSpan(set, chunks, out.Cells, noise, frame); err != nil {
			return nil, err
		}
		return out, nil
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		start := w * len(chunks) / workers
		end := (w + 1) * len(chunks) / workers
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			errs[w] = matchSpan(set, chunks[start:end], out.Cells[start:end], noise, frame)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// matchSpan matches a contiguous span of chunks into the corresponding
// span of cells. Noise-free runs memoize the winning character per
// distinct feature vector; the key is the exact bit pattern of the
// features, so a memo hit returns the same character a fresh match
// would.
func matchSpan(set *GlyphSet, chunks []PixelChunk, cells []ChunkResult, noise *noiseSource, frame int) error {
	cell := set.font.GlyphWidth() * set.font.GlyphHeight()

	var memo map[string]rune
	var key []byte
	if noise == nil {
		memo = make(map[string]rune)
		key = make([]byte, 0, 2*cell*8)
	}

	for i := range chunks {
		c := &chunks[i]
		if len(c.Lum) != cell {
			return fmt.Errorf("chunk %d has %d pixels, want %d", c.Index, len(c.Lum), cell)
		}

		if memo != nil {
			key = appendFeatureKey(key[:0], c)
			ch, ok := memo[string(key)]
			if !ok {
				ch = set.BestMatch(c, nil, frame)
				memo[string(key)] = ch
			}
			cells[i] = ChunkResult{Char: ch, Color: c.AverageColor()}
			continue
		}

		cells[i] = ChunkResult{Char: set.BestMatch(c, noise, frame), Color: c.AverageColor()}
	}
	return nil
}

// appendFeatureKey appends the exact float64 bit patterns of the
// chunk's metric inputs to key.
func appendFeatureKey(key []byte, c *PixelChunk) []byte {
	var buf [8]byte
	for _, v := range c.Lum {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		key = append(key, buf[:]...)
	}
	for _, v := range c.Grad {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		key = append(key, buf[:]...)
	}
	return key
}
