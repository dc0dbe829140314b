package synth

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func fixedParams(seed uint64) *Params {
	p := NewParams()
	p.Seed = seed
	return p
}

// corpusValueSet collects every distinct pixel (as a string key) of img.
func corpusValueSet(img *Image) map[string]bool {
	set := map[string]bool{}
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			set[string(img.At(x, y))] = true
		}
	}
	return set
}

func TestRunEveryPixelFromCorpus(t *testing.T) {
	// 2x2 corpus of red, green, blue and dark gray, 4x4 zeroed output
	corpus := []uint8{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 20, 20, 20,
	}
	st, err := NewState(corpus, 2, 2, 3, 4, 4)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	p := fixedParams(1)
	p.Neighbors = 1
	p.Tries = 4
	p.Magic = 0
	res, err := st.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	set := corpusValueSet(&Image{W: 2, H: 2, Depth: 3, Pix: corpus})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if !set[string(res.Image().At(x, y))] {
				t.Fatalf("output pixel (%d,%d) = %v not a corpus pixel", x, y, res.Image().At(x, y))
			}
		}
	}
}

func TestRunSolidCorpusGivesSolidOutput(t *testing.T) {
	corpus := NewImage(16, 16, 3)
	for i := range corpus.Pix {
		corpus.Pix[i] = 128
	}
	st, err := NewTextureState(corpus, 1)
	if err != nil {
		t.Fatalf("NewTextureState failed: %v", err)
	}
	res, err := st.Run(context.Background(), fixedParams(9))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, b := range res.Pixels() {
		if b != 128 {
			t.Fatalf("output byte %d = %d, want 128", i, b)
		}
	}
}

func TestRunCheckerboardStaysBinary(t *testing.T) {
	corpus := NewImage(4, 4, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				corpus.Pix[corpus.Off(x, y)] = 255
			}
		}
	}
	st, err := NewState(corpus.Pix, 4, 4, 1, 8, 8)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	p := fixedParams(42)
	p.HTile = true
	p.VTile = true
	res, err := st.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, b := range res.Pixels() {
		if b != 0 && b != 255 {
			t.Fatalf("output byte %d = %d, want pure black or white", i, b)
		}
	}
}

func TestRunDeterministicPerSeed(t *testing.T) {
	mk := func() *Result {
		corpus := NewImage(4, 4, 1)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if (x+y)%2 == 0 {
					corpus.Pix[corpus.Off(x, y)] = 255
				}
			}
		}
		st, err := NewState(corpus.Pix, 4, 4, 1, 8, 8)
		if err != nil {
			t.Fatalf("NewState failed: %v", err)
		}
		p := fixedParams(42)
		p.HTile = true
		p.VTile = true
		res, err := st.Run(context.Background(), p)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return res
	}
	a, b := mk(), mk()
	if !bytes.Equal(a.Pixels(), b.Pixels()) {
		t.Fatalf("identical seeds produced different outputs")
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	st, err := NewState(nil, 0, 0, 3, 4, 4)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	before := make([]uint8, len(st.Data().Pix))
	copy(before, st.Data().Pix)
	_, err = st.Run(context.Background(), fixedParams(1))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if !bytes.Equal(before, st.Data().Pix) {
		t.Fatalf("data mutated despite invalid input")
	}
}

func TestRunBadChannelCount(t *testing.T) {
	if _, err := NewState(make([]uint8, 100), 2, 2, 5, 4, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("channels=5: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewState(make([]uint8, 100), 2, 2, 0, 4, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("channels=0: err = %v, want ErrInvalidInput", err)
	}
}

func TestRunNoCandidatesDoesNotCrash(t *testing.T) {
	corpus := NewImage(8, 8, 1)
	st, err := NewState(corpus.Pix, 8, 8, 1, 8, 8)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	p := fixedParams(5)
	p.Neighbors = 0
	p.Tries = 0
	if _, err := st.Run(context.Background(), p); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := range st.status {
		if !st.status[i].hasValue {
			t.Fatalf("pixel %d missing hasValue after run", i)
		}
	}
}

func TestRunInheritanceOnly(t *testing.T) {
	// With probes and polishing disabled there is no bootstrap source,
	// so nothing is ever committed and the output keeps its initial
	// content. Every output pixel still matches some corpus pixel
	// because the corpus contains zero-valued pixels.
	corpus := NewImage(32, 32, 1)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			corpus.Pix[corpus.Off(x, y)] = uint8((x * y) % 251)
		}
	}
	st, err := NewState(corpus.Pix, 32, 32, 1, 32, 32)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	p := fixedParams(17)
	p.Magic = 0
	p.Tries = 0
	p.Neighbors = 29
	res, err := st.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	set := corpusValueSet(corpus)
	for i, b := range res.Pixels() {
		if !set[string([]uint8{b})] {
			t.Fatalf("output byte %d = %d not present in corpus", i, b)
		}
	}
}

func TestRunIdentityOnSelf(t *testing.T) {
	// Data initialized to the corpus, no probes, no polishing: with no
	// probe bootstrap nothing can out-score the absent candidates, so
	// the buffer comes through unchanged.
	img := NewImage(16, 16, 1)
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 37) % 256)
	}
	st, err := NewHealState(img, nil, nil)
	if err != nil {
		t.Fatalf("NewHealState failed: %v", err)
	}
	p := fixedParams(8)
	p.Tries = 0
	p.Magic = 0
	p.Neighbors = MaxNeighbors
	res, err := st.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !bytes.Equal(res.Pixels(), img.Pix) {
		t.Fatalf("identity run modified the buffer")
	}
}

func TestRunCanceled(t *testing.T) {
	corpus := NewImage(8, 8, 1)
	st, err := NewState(corpus.Pix, 8, 8, 1, 64, 64)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := st.Run(ctx, fixedParams(3)); !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
}

func TestRunProgressReachesTotal(t *testing.T) {
	corpus := NewImage(4, 4, 1)
	st, err := NewState(corpus.Pix, 4, 4, 1, 8, 8)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	p := fixedParams(2)
	p.Magic = 0
	var last, total int
	calls := 0
	p.Progress = func(done, tot int) {
		last, total = done, tot
		calls++
	}
	if _, err := st.Run(context.Background(), p); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if total != 64 || last != total || calls != total {
		t.Fatalf("progress: last=%d total=%d calls=%d, want 64/64/64", last, total, calls)
	}
}

func TestRunCommitsSources(t *testing.T) {
	corpus := NewImage(6, 6, 1)
	for i := range corpus.Pix {
		corpus.Pix[i] = uint8(i)
	}
	st, err := NewState(corpus.Pix, 6, 6, 1, 6, 6)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	res, err := st.Run(context.Background(), fixedParams(4))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := range st.status {
		stt := &st.status[i]
		if !stt.hasValue || !stt.hasSource {
			t.Fatalf("pixel %d: hasValue=%v hasSource=%v", i, stt.hasValue, stt.hasSource)
		}
		x, y := i%6, i/6
		src := stt.source
		if res.Image().At(x, y)[0] != corpus.At(src.X, src.Y)[0] {
			t.Fatalf("pixel (%d,%d) does not match its committed source %v", x, y, src)
		}
	}
}

func TestOutputSize(t *testing.T) {
	cases := []struct {
		cw, ch, scale, w, h int
	}{
		{100, 50, 2, 200, 100},
		{100, 50, 1, 100, 50},
		{100, 50, -64, 64, 64},
		{100, 50, 0, 256, 256},
	}
	for _, c := range cases {
		w, h := OutputSize(c.cw, c.ch, c.scale)
		if w != c.w || h != c.h {
			t.Fatalf("OutputSize(%d,%d,%d) = %dx%d, want %dx%d", c.cw, c.ch, c.scale, w, h, c.w, c.h)
		}
	}
}

func TestWrapOrClip(t *testing.T) {
	s := newState(NewImage(4, 4, 1), NewImage(10, 8, 1))
	s.hTile, s.vTile = true, false

	// large displacement wraps repeatedly on the tileable axis
	p, ok := s.wrapOrClip(Point{X: -23, Y: 3})
	if !ok || p.X != 7 || p.Y != 3 {
		t.Fatalf("wrap gave %v ok=%v, want (7,3)", p, ok)
	}
	p, ok = s.wrapOrClip(Point{X: 34, Y: 0})
	if !ok || p.X != 4 {
		t.Fatalf("wrap gave %v ok=%v, want x=4", p, ok)
	}
	// clipped axis rejects
	if _, ok := s.wrapOrClip(Point{X: 1, Y: -1}); ok {
		t.Fatalf("expected rejection on clipped axis")
	}
	if _, ok := s.wrapOrClip(Point{X: 1, Y: 8}); ok {
		t.Fatalf("expected rejection on clipped axis")
	}
}
