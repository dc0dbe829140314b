package synth

import "math"

// diffTableSize covers signed channel deltas -256..255 at index 256+delta.
const diffTableSize = 512

// maxPenalty is the table value for a full-range mismatch. Entry 0
// (delta -256) always holds it and doubles as the per-channel cost of a
// candidate neighborhood falling outside the corpus.
const maxPenalty = 65536

// buildDiffTable fills tbl with the perceptual penalty for each signed
// channel delta. With autism > 0 the curve is a normalized log-Cauchy:
// heavy-tailed, so isolated outliers stay cheap while broad mismatch is
// still punished. With autism == 0 the table degenerates to a step:
// exact match is free, everything else costs maxPenalty.
func buildDiffTable(tbl *[diffTableSize]int, autism float64) {
	if autism <= 0 {
		for i := -256; i < 256; i++ {
			if i == 0 {
				tbl[256+i] = 0
			} else {
				tbl[256+i] = maxPenalty
			}
		}
		return
	}
	norm := math.Log(1/(autism*autism) + 1)
	for i := -256; i < 256; i++ {
		x := float64(i) / 256.0 / autism
		tbl[256+i] = int(math.Round(math.Log(x*x+1) / norm * maxPenalty))
	}
}
