package glyphcast

// noiseSource derives deterministic score perturbations from a single
// run seed. Each (frame, chunk, glyph) coordinate gets an independent
// value, so results do not depend on evaluation order or worker count.
type noiseSource struct {
	seed  uint64
	scale float64
}

// splitmix64 is the SplitMix64 generator step, used here as a mixing
// function.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// perturb returns a value in [0, scale) that depends only on the seed
// and the (frame, chunk, glyph) coordinates.
func (n *noiseSource) perturb(frame, chunk, glyph int) float64 {
	h := splitmix64(n.seed)
	h = splitmix64(h ^ uint64(frame))
	h = splitmix64(h ^ uint64(chunk))
	h = splitmix64(h ^ uint64(glyph))
	// Take the top 53 bits for a uniform float in [0, 1).
	return float64(h>>11) / (1 << 53) * n.scale
}
