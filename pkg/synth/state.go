package synth

import (
	"errors"
	"fmt"
)

// Caller-visible error kinds.
var (
	// ErrInvalidInput covers empty corpora, empty outputs, unsupported
	// channel counts and mismatched mask dimensions. No work has been
	// performed when it is returned.
	ErrInvalidInput = errors.New("resynth: invalid input")

	// ErrCanceled is returned when the run's context is canceled. The
	// data buffer holds a partial but well-formed image: every plan
	// position visited before cancellation has been assigned.
	ErrCanceled = errors.New("resynth: canceled")
)

// pixelStatus tracks one output pixel across a run.
type pixelStatus struct {
	hasValue  bool
	hasSource bool
	source    Point
}

// State owns every per-run buffer: the corpus and data images, the
// per-pixel status, the sorted offset list, the difference table and the
// tried table; the visit plan is built inside each Run. A State is built once per synthesis
// job and is not safe for concurrent use.
type State struct {
	corpus *Image
	data   *Image

	// fillPoints are the data coords the run will synthesize. The
	// texture path fills the whole output; the healing path restricts
	// this to the masked region.
	fillPoints []Point

	// preValued are data pixel indices that already carry meaningful
	// content before the run starts (healing context). They are marked
	// assigned up front so they serve as neighbors.
	preValued []int

	// corpusOK, when non-nil, marks which corpus coords may be read as
	// sources. corpusPoints lists them for uniform random probing. Both
	// nil means the whole corpus is readable.
	corpusOK     []bool
	corpusPoints []Point

	status  []pixelStatus
	tried   []int
	offsets []Point
	diff    [diffTableSize]int
	rng     pcg32

	hTile, vTile bool

	// per-iteration scratch
	nbrs    []neighbor
	iter    int
	best    int
	bestPt  Point
	hasBest bool
}

func newState(corpus, data *Image) *State {
	return &State{
		corpus:     corpus,
		data:       data,
		fillPoints: allPoints(data.W, data.H),
	}
}

// NewState builds a synthesis state from raw corpus pixels and the
// desired output dimensions. channels must be 1..4 and is shared by
// corpus and output. The output buffer is allocated zeroed.
func NewState(corpus []uint8, cw, ch, channels, dw, dh int) (*State, error) {
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("%w: %d channels (want 1..4)", ErrInvalidInput, channels)
	}
	if cw < 0 || ch < 0 || len(corpus) < cw*ch*channels {
		return nil, fmt.Errorf("%w: corpus buffer too short for %dx%dx%d", ErrInvalidInput, cw, ch, channels)
	}
	c := &Image{W: cw, H: ch, Depth: channels, Pix: corpus}
	return newState(c, NewImage(dw, dh, channels)), nil
}

// NewTextureState builds a synthesis state whose output dimensions are
// derived from the corpus and a scale factor via OutputSize.
func NewTextureState(corpus *Image, scale int) (*State, error) {
	if corpus == nil || corpus.Depth < 1 || corpus.Depth > 4 {
		return nil, fmt.Errorf("%w: corpus must have 1..4 channels", ErrInvalidInput)
	}
	dw, dh := OutputSize(corpus.W, corpus.H, scale)
	return newState(corpus, NewImage(dw, dh, corpus.Depth)), nil
}

// OutputSize maps a scale factor to output dimensions. Positive scale
// multiplies the corpus dimensions. Negative scale is an absolute edge
// length and always yields a square, whatever the corpus aspect ratio.
// Zero falls back to 256x256 regardless of corpus size; that default is
// historical and deliberately preserved.
func OutputSize(cw, ch, scale int) (int, int) {
	switch {
	case scale > 0:
		return cw * scale, ch * scale
	case scale < 0:
		return -scale, -scale
	}
	return 256, 256
}

// Data exposes the output image. It belongs to the State; Results
// returned by Run alias it rather than copying.
func (s *State) Data() *Image { return s.data }
