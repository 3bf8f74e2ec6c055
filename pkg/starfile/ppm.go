// Plain-text PPM (P3) encoding and decoding.

package starfile

import (
	"bufio"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ha1tch/starlines/pkg/raster"
)

// ErrBadPPM is wrapped by every ReadPPM format error.
var ErrBadPPM = errors.New("malformed P3 data")

// WritePPM writes img as P3: a "P3" line, "<width> <height>", "255", then
// one line per row holding the space separated R G B values of each pixel
// left to right.
func WritePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	header := "P3\n" + strconv.Itoa(b.Dx()) + " " + strconv.Itoa(b.Dy()) + "\n255\n"
	if _, err := bw.WriteString(header); err != nil {
		return errors.Wrap(err, "write ppm header")
	}

	line := make([]byte, 0, b.Dx()*12)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line = line[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := raster.ColorOf(img.At(x, y))
			if x > b.Min.X {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return errors.Wrapf(err, "write ppm row %d", y)
		}
	}
	return errors.Wrap(bw.Flush(), "flush ppm")
}

// ReadPPM decodes P3 data into a canvas. Comments ('#' to end of line) and
// arbitrary whitespace between values are accepted. Values are rescaled
// to 0..255 when the header's maximum is not 255.
func ReadPPM(r io.Reader) (*raster.Canvas, error) {
	next := ppmTokens(r)

	magic, err := next()
	if err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != "P3" {
		return nil, errors.Wrapf(ErrBadPPM, "magic %q", magic)
	}

	var dims [3]int
	for i, name := range []string{"width", "height", "max value"} {
		tok, err := next()
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrBadPPM, "%s %q", name, tok)
		}
		dims[i] = n
	}
	width, height, maxVal := dims[0], dims[1], dims[2]
	if maxVal == 0 || maxVal > 65535 {
		return nil, errors.Wrapf(ErrBadPPM, "max value %d", maxVal)
	}

	c := raster.NewCanvas(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var ch [3]uint8
			for i := range ch {
				tok, err := next()
				if err != nil {
					return nil, errors.Wrapf(err, "pixel (%d, %d)", x, y)
				}
				v, err := strconv.Atoi(tok)
				if err != nil || v < 0 || v > maxVal {
					return nil, errors.Wrapf(ErrBadPPM, "pixel (%d, %d) value %q", x, y, tok)
				}
				ch[i] = uint8((v*255 + maxVal/2) / maxVal)
			}
			c.Set(x, y, raster.Color{R: ch[0], G: ch[1], B: ch[2]})
		}
	}
	return c, nil
}

// ppmTokens returns a function yielding whitespace separated tokens with
// comments removed. It returns io.ErrUnexpectedEOF once input runs out.
func ppmTokens(r io.Reader) func() (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	var fields []string
	return func() (string, error) {
		for len(fields) == 0 {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return "", err
				}
				return "", io.ErrUnexpectedEOF
			}
			line := sc.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			fields = strings.Fields(line)
		}
		tok := fields[0]
		fields = fields[1:]
		return tok, nil
	}
}
