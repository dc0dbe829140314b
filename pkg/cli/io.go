package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fepozopo/resynth/pkg/synth"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func init() {
	// bmp and tiff self-register through their imports; qoi is wired in
	// explicitly so image.Decode can sniff it too.
	image.RegisterFormat("qoi", "qoif", qoi.Decode, qoi.DecodeConfig)
}

// LoadImage reads an image file into a flat pixel buffer. PNG, JPEG,
// GIF, BMP, TIFF and QOI are supported; the format is sniffed from the
// content, not the extension. Grayscale files keep a single channel.
func LoadImage(path string) (*synth.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return synth.FromImage(img), nil
}

// SaveImage writes img using the format inferred from the filename
// extension: .png, .jpg/.jpeg, .gif, .bmp, .tiff/.tif or .qoi. Anything
// else is written as PNG.
func SaveImage(path string, img *synth.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	std := img.ToImage()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, std, &jpeg.Options{Quality: 92})
	case ".gif":
		return gif.Encode(f, std, nil)
	case ".bmp":
		return bmp.Encode(f, std)
	case ".tiff", ".tif":
		return tiff.Encode(f, std, nil)
	case ".qoi":
		return qoi.Encode(f, std)
	default:
		return png.Encode(f, std)
	}
}
