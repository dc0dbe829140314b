package synth

// buildPlan returns the ordered list of positions the synthesis loop
// will visit, in reverse. The first len(s.fillPoints) entries are a shuffled
// permutation of s.fillPoints; when magic > 0 a polishing tail follows,
// re-listing a geometrically shrinking prefix of the shuffled order.
//
// The shuffle swaps D[i] with D[Range(0, n-1)] for every i. That is the
// historical biased shuffle and is kept as-is: outputs of existing seeds
// depend on it, and the bias is irrelevant to synthesis quality.
//
// The loop consumes the plan from the end, so the polishing tail runs
// first and the shuffled prefix is committed last. The pixels at the
// front of the shuffled order appear in the most tail rounds; they are
// visited early with little context and then synthesized once more at
// the very end of the run, when the rest of the image exists.
func (s *State) buildPlan(magic int) []Point {
	pts := make([]Point, len(s.fillPoints))
	copy(pts, s.fillPoints)
	n := len(pts)
	for i := 0; i < n; i++ {
		j := s.rng.Range(0, n-1)
		pts[i], pts[j] = pts[j], pts[i]
	}
	plan := pts
	if magic > 0 {
		for k := n; ; {
			k = k * magic / 256
			if k <= 0 {
				break
			}
			plan = append(plan, pts[:k]...)
		}
	}
	return plan
}

// allPoints enumerates every coord of a w×h grid in row-major order.
func allPoints(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}
