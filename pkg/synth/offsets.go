package synth

import "sort"

// buildOffsets enumerates every displacement (dx,dy) with |dx| < W and
// |dy| < H, where W and H are the per-axis minima of corpus and data
// dimensions, sorted ascending by squared Euclidean distance. Neighbors
// examined in this order are the closest assigned pixels first, so the
// neighbor cap drops the least informative candidates and the scoring
// loop terminates early as often as possible. (0,0) has the unique
// minimum distance and therefore always sorts first.
func buildOffsets(cw, ch, dw, dh int) []Point {
	w := min(cw, dw)
	h := min(ch, dh)
	offs := make([]Point, 0, (2*w-1)*(2*h-1))
	for y := -h + 1; y < h; y++ {
		for x := -w + 1; x < w; x++ {
			offs = append(offs, Point{X: x, Y: y})
		}
	}
	sort.SliceStable(offs, func(i, j int) bool {
		a, b := offs[i], offs[j]
		return a.X*a.X+a.Y*a.Y < b.X*b.X+b.Y*b.Y
	})
	return offs
}
