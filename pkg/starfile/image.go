// Raster export: PNG, BMP and extension-based dispatch.

package starfile

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// WritePNG encodes img losslessly as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encode png")
}

// WriteBMP encodes img as an uncompressed 24-bit BMP.
func WriteBMP(w io.Writer, img image.Image) error {
	return errors.Wrap(bmp.Encode(w, img), "encode bmp")
}

// Encoder writes an image in one format.
type Encoder func(w io.Writer, img image.Image) error

// Formats maps lower-case file extensions to encoders.
var Formats = map[string]Encoder{
	".ppm": WritePPM,
	".png": WritePNG,
	".bmp": WriteBMP,
}

// FormatFor returns the encoder for path's extension.
func FormatFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := Formats[ext]
	if !ok {
		return nil, fmt.Errorf("unknown image format: %q", ext)
	}
	return enc, nil
}

// WriteImageFile encodes img to path, choosing the format by extension.
func WriteImageFile(path string, img image.Image) (err error) {
	enc, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return enc(f, img)
}
