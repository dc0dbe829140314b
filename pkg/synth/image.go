package synth

import (
	"image"
	"image/color"
)

// Image is a flat, row-major pixel buffer with 1 to 4 bytes per pixel.
// Unlike image.NRGBA there is no padding between rows and the channel
// count is carried explicitly, so grayscale and gray+alpha corpora keep
// their natural depth instead of being widened to RGBA.
type Image struct {
	W, H  int
	Depth int
	Pix   []uint8
}

// NewImage allocates a zeroed buffer of the given dimensions.
func NewImage(w, h, depth int) *Image {
	return &Image{W: w, H: h, Depth: depth, Pix: make([]uint8, w*h*depth)}
}

// Off returns the index of pixel (x,y) in Pix.
func (im *Image) Off(x, y int) int {
	return (y*im.W + x) * im.Depth
}

// At returns the channel slice of pixel (x,y). The slice aliases Pix.
func (im *Image) At(x, y int) []uint8 {
	o := im.Off(x, y)
	return im.Pix[o : o+im.Depth]
}

// Contains reports whether (x,y) is in bounds.
func (im *Image) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < im.W && y < im.H
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := &Image{W: im.W, H: im.H, Depth: im.Depth, Pix: make([]uint8, len(im.Pix))}
	copy(out.Pix, im.Pix)
	return out
}

// FromImage converts a decoded image into an Image. Grayscale sources
// keep depth 1; everything else is converted to non-premultiplied RGBA
// at depth 4.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if g, ok := src.(*image.Gray); ok {
		out := NewImage(w, h, 1)
		for y := 0; y < h; y++ {
			copy(out.Pix[y*w:(y+1)*w], g.Pix[y*g.Stride:y*g.Stride+w])
		}
		return out
	}
	out := NewImage(w, h, 4)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[idx+0] = c.R
			out.Pix[idx+1] = c.G
			out.Pix[idx+2] = c.B
			out.Pix[idx+3] = c.A
			idx += 4
		}
	}
	return out
}

// ToImage converts back to a stdlib image for encoding. Depth 1 maps to
// image.Gray; depth 2 is treated as gray+alpha; depth 3 as RGB with an
// opaque alpha; depth 4 as NRGBA.
func (im *Image) ToImage() image.Image {
	if im.Depth == 1 {
		out := image.NewGray(image.Rect(0, 0, im.W, im.H))
		for y := 0; y < im.H; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+im.W], im.Pix[y*im.W:(y+1)*im.W])
		}
		return out
	}
	out := image.NewNRGBA(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			p := im.At(x, y)
			o := out.PixOffset(x, y)
			switch im.Depth {
			case 2:
				out.Pix[o+0] = p[0]
				out.Pix[o+1] = p[0]
				out.Pix[o+2] = p[0]
				out.Pix[o+3] = p[1]
			case 3:
				out.Pix[o+0] = p[0]
				out.Pix[o+1] = p[1]
				out.Pix[o+2] = p[2]
				out.Pix[o+3] = 255
			default:
				out.Pix[o+0] = p[0]
				out.Pix[o+1] = p[1]
				out.Pix[o+2] = p[2]
				out.Pix[o+3] = p[3]
			}
		}
	}
	return out
}

// Point is an integer (x,y) coordinate.
type Point struct {
	X, Y int
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
