package synth

import (
	"context"
	"fmt"
	"math"
)

// worstPenalty is the starting value of best for each iteration. Any
// complete candidate score is below it: even the extreme case of
// MaxNeighbors neighbors, 4 channels each at maxPenalty, sums to under
// 2^31, so the accumulator cannot overflow either.
const worstPenalty = math.MaxInt32

// neighbor is one collected context pixel: its displacement from the
// current position, its status record, and its channel values. Slot 0
// is always the current position itself and is never scored.
type neighbor struct {
	offset Point
	st     *pixelStatus
	pix    []uint8
}

// Run executes the synthesis job once, mutating the state's data buffer
// in place. The context is sampled between output pixels; cancellation
// surfaces as ErrCanceled with the partial result left in the buffer.
func (s *State) Run(ctx context.Context, params *Params) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.corpus.W <= 0 || s.corpus.H <= 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrInvalidInput)
	}
	if s.data.W <= 0 || s.data.H <= 0 {
		return nil, fmt.Errorf("%w: empty output", ErrInvalidInput)
	}
	if s.corpus.Depth != s.data.Depth {
		return nil, fmt.Errorf("%w: corpus depth %d != output depth %d", ErrInvalidInput, s.corpus.Depth, s.data.Depth)
	}
	if s.corpusPoints != nil && len(s.corpusPoints) == 0 {
		return nil, fmt.Errorf("%w: no readable corpus pixels", ErrInvalidInput)
	}

	p := params.clamped()
	s.hTile, s.vTile = p.HTile, p.VTile
	s.rng.Seed(p.Seed)
	buildDiffTable(&s.diff, p.Autism)
	s.offsets = buildOffsets(s.corpus.W, s.corpus.H, s.data.W, s.data.H)
	s.status = make([]pixelStatus, s.data.W*s.data.H)
	for _, i := range s.preValued {
		s.status[i].hasValue = true
	}
	s.tried = make([]int, s.corpus.W*s.corpus.H)
	s.iter = 0
	s.nbrs = make([]neighbor, 0, min(p.Neighbors, len(s.offsets)))

	plan := s.buildPlan(p.Magic)
	total := len(plan)
	for i := total - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCanceled, err)
		}
		s.synthesize(plan[i], &p)
		if p.Progress != nil {
			p.Progress(total-i, total)
		}
	}
	return &Result{img: s.data}, nil
}

// synthesize assigns one output pixel: collect context, propose
// candidates, commit the best-scoring corpus pixel.
func (s *State) synthesize(pt Point, p *Params) {
	s.iter++
	st := &s.status[pt.Y*s.data.W+pt.X]
	st.hasValue = true

	s.collectNeighbors(pt, p.Neighbors)
	s.best = worstPenalty
	s.hasBest = false

	// Inherited candidates: each neighbor with a committed source votes
	// for the corpus pixel sitting at the same displacement from that
	// source. The tried table keeps a candidate from being scored twice
	// in one iteration.
	for i := range s.nbrs {
		n := &s.nbrs[i]
		if !n.st.hasSource {
			continue
		}
		c := Point{X: n.st.source.X - n.offset.X, Y: n.st.source.Y - n.offset.Y}
		if !s.corpus.Contains(c.X, c.Y) || !s.readable(c.X, c.Y) {
			continue
		}
		ti := c.Y*s.corpus.W + c.X
		if s.tried[ti] == s.iter {
			continue
		}
		s.tryPoint(c)
		s.tried[ti] = s.iter
		if s.best == 0 {
			break
		}
	}

	// Random probes. Deliberately not deduplicated against the tried
	// table: a repeat probe is cheaper than the bookkeeping.
	for t := 0; t < p.Tries && s.best != 0; t++ {
		s.tryPoint(s.randomCorpusPoint())
	}

	if s.hasBest {
		copy(s.data.At(pt.X, pt.Y), s.corpus.At(s.bestPt.X, s.bestPt.Y))
		st.source = s.bestPt
		st.hasSource = true
	}
}

// collectNeighbors scans the sorted offset list and records up to max
// in-range, already-assigned pixels around pt. (0,0) is the first offset
// and pt was just marked assigned, so slot 0 is always pt itself; it is
// reserved and skipped during scoring, but its status record still
// feeds inherited candidates, which is what lets a polishing pass
// rescore a pixel's own previous source.
func (s *State) collectNeighbors(pt Point, max int) {
	s.nbrs = s.nbrs[:0]
	if max <= 0 {
		return
	}
	for _, off := range s.offsets {
		q, ok := s.wrapOrClip(Point{X: pt.X + off.X, Y: pt.Y + off.Y})
		if !ok {
			continue
		}
		qs := &s.status[q.Y*s.data.W+q.X]
		if !qs.hasValue {
			continue
		}
		o := s.data.Off(q.X, q.Y)
		s.nbrs = append(s.nbrs, neighbor{
			offset: off,
			st:     qs,
			pix:    s.data.Pix[o : o+s.data.Depth],
		})
		if len(s.nbrs) >= max {
			break
		}
	}
}

// wrapOrClip maps a displaced coord back into the output. On a tileable
// axis the coord wraps, repeatedly if the displacement exceeds the
// extent; on a clipped axis an out-of-range coord rejects the neighbor.
func (s *State) wrapOrClip(p Point) (Point, bool) {
	for p.X < 0 {
		if !s.hTile {
			return p, false
		}
		p.X += s.data.W
	}
	for p.X >= s.data.W {
		if !s.hTile {
			return p, false
		}
		p.X -= s.data.W
	}
	for p.Y < 0 {
		if !s.vTile {
			return p, false
		}
		p.Y += s.data.H
	}
	for p.Y >= s.data.H {
		if !s.vTile {
			return p, false
		}
		p.Y -= s.data.H
	}
	return p, true
}

// tryPoint scores candidate c against the collected neighborhood and
// records it as best if it completes below the current best. Neighbors
// are scored closest-first, so the running sum crosses best as early as
// possible and the loop bails out.
func (s *State) tryPoint(c Point) {
	sum := 0
	edge := s.diff[0] * s.corpus.Depth
	depth := s.corpus.Depth
	for i := 1; i < len(s.nbrs); i++ {
		n := &s.nbrs[i]
		cx := c.X + n.offset.X
		cy := c.Y + n.offset.Y
		if !s.corpus.Contains(cx, cy) || !s.readable(cx, cy) {
			// The corpus does not wrap; a neighborhood hanging off its
			// edge pays the maximum per-channel penalty.
			sum += edge
		} else {
			o := s.corpus.Off(cx, cy)
			for j := 0; j < depth; j++ {
				sum += s.diff[256+int(n.pix[j])-int(s.corpus.Pix[o+j])]
			}
		}
		if sum >= s.best {
			return
		}
	}
	s.best = sum
	s.bestPt = c
	s.hasBest = true
}

// readable reports whether a corpus coord may be read as a source.
func (s *State) readable(x, y int) bool {
	return s.corpusOK == nil || s.corpusOK[y*s.corpus.W+x]
}

// randomCorpusPoint draws a uniform readable corpus coord.
func (s *State) randomCorpusPoint() Point {
	if s.corpusPoints != nil {
		return s.corpusPoints[s.rng.Range(0, len(s.corpusPoints)-1)]
	}
	return Point{X: s.rng.Range(0, s.corpus.W-1), Y: s.rng.Range(0, s.corpus.H-1)}
}
