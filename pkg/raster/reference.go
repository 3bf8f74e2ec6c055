package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/vector"
)

// Backend selects the graphics library behind the reference rasterizer.
type Backend int

const (
	BackendGG     Backend = iota // github.com/fogleman/gg stroke
	BackendVector                // golang.org/x/image/vector filled quad
)

// String returns the backend name as used in config files.
func (b Backend) String() string {
	switch b {
	case BackendGG:
		return "gg"
	case BackendVector:
		return "vector"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps a config name to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "", "gg":
		return BackendGG, nil
	case "vector":
		return BackendVector, nil
	}
	return 0, fmt.Errorf("unknown reference backend %q", name)
}

// Reference returns a rasterizer that draws the segment with a graphics
// library onto a black scratch image the size of the target and copies
// every non-black pixel across. The exact pixel set is whatever the
// library produces.
func Reference(b Backend) LineFunc {
	if b == BackendVector {
		return ReferenceVector
	}
	return ReferenceGG
}

// ReferenceGG is Reference(BackendGG).
func ReferenceGG(p Plotter, a, b Point, c Color) {
	if a == b {
		p.Set(a.X, a.Y, c)
		return
	}
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB255(int(c.R), int(c.G), int(c.B))
	dc.SetLineWidth(1)
	// Pixel (x, y) covers [x, x+1); stroke through the centres.
	dc.DrawLine(float64(a.X)+0.5, float64(a.Y)+0.5, float64(b.X)+0.5, float64(b.Y)+0.5)
	dc.Stroke()

	CopyNonBlack(p, dc.Image())
}

// ReferenceVector is Reference(BackendVector). The segment is filled as a
// quad one pixel wide, centred on the line through the pixel centres.
func ReferenceVector(p Plotter, a, b Point, c Color) {
	if a == b {
		p.Set(a.X, a.Y, c)
		return
	}
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return
	}

	ax, ay := float64(a.X)+0.5, float64(a.Y)+0.5
	bx, by := float64(b.X)+0.5, float64(b.Y)+0.5
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	nx, ny := -dy/length*0.5, dx/length*0.5

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(ax-nx), float32(ay-ny))
	z.ClosePath()

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Black), image.Point{}, draw.Src)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})

	CopyNonBlack(p, dst)
}
