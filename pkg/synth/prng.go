package synth

// pcg32 is a PCG-XSH-RR generator: 64-bit LCG state, 32-bit output.
// Every State carries its own instance so concurrent jobs never share
// generator state. Identical seeds yield identical sequences, which is
// what makes whole runs reproducible.
type pcg32 struct {
	state uint64
	inc   uint64
}

const pcg32Mult = 6364136223846793005

// Seed reinitializes the generator from a 64-bit seed.
func (r *pcg32) Seed(seed uint64) {
	r.inc = 1442695040888963407
	r.state = seed + r.inc
	r.next()
}

func (r *pcg32) next() uint32 {
	old := r.state
	r.state = old*pcg32Mult + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Range returns a uniform integer in the inclusive range [lo, hi].
func (r *pcg32) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(r.next()%uint32(hi-lo+1))
}
