// Package raster provides the pixel canvas and the line rasterizers that
// draw onto it.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// String returns "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Segment is an ordered pair of endpoints.
type Segment struct {
	A, B Point
}

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Named colours used by the default drawing plan.
var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{255, 255, 0}
	Cyan   = Color{0, 255, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// IsBlack reports whether all three channels are zero.
func (c Color) IsBlack() bool {
	return c == Black
}

// String returns "RGB(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// ColorOf converts any color.Color to Color, dropping alpha.
func ColorOf(c color.Color) Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B}
}

// ColorModel converts colours to Color.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return ColorOf(c)
})

// Plotter is the single-pixel write target shared by rasterizers and
// markers.
type Plotter interface {
	Set(x, y int, c Color)
	Size() (width, height int)
}

// Canvas is a fixed-size grid of colours, black on construction.
// Pixels are stored row-major: index y*width + x.
type Canvas struct {
	width, height int
	pix           []Color
}

// NewCanvas creates a black canvas. Negative dimensions are treated as 0.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// InBounds reports whether (x, y) lies on the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set overwrites one pixel. Coordinates off the canvas are ignored;
// rasterizers and markers rely on this to clip.
func (c *Canvas) Set(x, y int, col Color) {
	if !c.InBounds(x, y) {
		return
	}
	c.pix[y*c.width+x] = col
}

// Pixel returns the colour at (x, y), or black off the canvas.
func (c *Canvas) Pixel(x, y int) Color {
	if !c.InBounds(x, y) {
		return Black
	}
	return c.pix[y*c.width+x]
}

// Row returns the pixels of row y. The slice aliases the canvas.
func (c *Canvas) Row(y int) []Color {
	if y < 0 || y >= c.height {
		return nil
	}
	return c.pix[y*c.width : (y+1)*c.width]
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Clone returns an independent copy.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{width: c.width, height: c.height, pix: make([]Color, len(c.pix))}
	copy(out.pix, c.pix)
	return out
}

// Equal reports whether both canvases have the same size and pixels.
func (c *Canvas) Equal(o *Canvas) bool {
	if c.width != o.width || c.height != o.height {
		return false
	}
	for i := range c.pix {
		if c.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Points returns the coordinates of every pixel for which keep returns
// true, in row-major order.
func (c *Canvas) Points(keep func(Color) bool) []Point {
	var pts []Point
	for y := 0; y < c.height; y++ {
		row := c.Row(y)
		for x, col := range row {
			if keep(col) {
				pts = append(pts, Point{x, y})
			}
		}
	}
	return pts
}

// CopyNonBlack copies every non-black pixel of src onto p.
func CopyNonBlack(p Plotter, src image.Image) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			col := ColorOf(src.At(x, y))
			if !col.IsBlack() {
				p.Set(x, y, col)
			}
		}
	}
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	return c.Pixel(x, y)
}

// Opaque reports true; every pixel is fully opaque.
func (c *Canvas) Opaque() bool {
	return true
}
