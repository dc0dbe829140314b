package synth

import "fmt"

// NewHealState builds an inpainting state over img. mask marks the
// pixels to fill (first channel nonzero = fill); source marks the
// pixels that may be read as corpus material. Either may be nil, which
// means all-ones: a nil mask fills everything, a nil source reads
// everything. Both masks must match img's dimensions.
//
// The engine itself never interprets masks. This front-end maps them
// onto the engine's two point sets: masked coords become the fill set,
// source-allowed coords become the readable corpus set, and unmasked
// pixels keep their content and are pre-marked assigned so they provide
// context from the first iteration.
func NewHealState(img, mask, source *Image) (*State, error) {
	if img == nil || img.W <= 0 || img.H <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	if img.Depth < 1 || img.Depth > 4 {
		return nil, fmt.Errorf("%w: %d channels (want 1..4)", ErrInvalidInput, img.Depth)
	}
	if mask != nil && (mask.W != img.W || mask.H != img.H) {
		return nil, fmt.Errorf("%w: mask is %dx%d, image is %dx%d", ErrInvalidInput, mask.W, mask.H, img.W, img.H)
	}
	if source != nil && (source.W != img.W || source.H != img.H) {
		return nil, fmt.Errorf("%w: source mask is %dx%d, image is %dx%d", ErrInvalidInput, source.W, source.H, img.W, img.H)
	}

	// Corpus and data are separate copies of the input so corpus reads
	// never observe half-filled output.
	s := newState(img.Clone(), img.Clone())

	if mask != nil {
		fill := make([]Point, 0, img.W*img.H)
		for y := 0; y < img.H; y++ {
			for x := 0; x < img.W; x++ {
				if mask.Pix[mask.Off(x, y)] != 0 {
					fill = append(fill, Point{X: x, Y: y})
				} else {
					s.preValued = append(s.preValued, y*img.W+x)
				}
			}
		}
		s.fillPoints = fill
	}

	if source != nil {
		s.corpusOK = make([]bool, img.W*img.H)
		s.corpusPoints = make([]Point, 0, img.W*img.H)
		for y := 0; y < img.H; y++ {
			for x := 0; x < img.W; x++ {
				if source.Pix[source.Off(x, y)] != 0 {
					s.corpusOK[y*img.W+x] = true
					s.corpusPoints = append(s.corpusPoints, Point{X: x, Y: y})
				}
			}
		}
	}
	return s, nil
}
