// Legend: algorithm names in their colours, placed in the canvas corner
// that overlaps the star least.

package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/star"
)

const (
	legendFontSize = 12
	legendMargin   = 8
	legendPad      = 4
	legendSwatch   = 8
)

// Rect is an axis-aligned rectangle given by its centre and full size.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectOverlap returns the overlap area of a and b, 0 when disjoint.
func RectOverlap(a, b Rect) float64 {
	overlapX := (a.W+b.W)/2 - math.Abs(a.X-b.X)
	overlapY := (a.H+b.H)/2 - math.Abs(a.Y-b.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// StarBounds is the box covering the circumcircle and vertex markers.
func StarBounds(g *star.Geometry) Rect {
	side := float64(2 * (g.Radius + raster.VertexMarkerRadius))
	return Rect{float64(g.Center.X), float64(g.Center.Y), side, side}
}

// PlaceBox returns the corner position (centre) for a w x h box inside a
// width x height canvas overlapping the obstacles least. Corners are
// tried top-left, top-right, bottom-left, bottom-right.
func PlaceBox(width, height int, w, h float64, obstacles []Rect) Rect {
	m := float64(legendMargin)
	left, right := m+w/2, float64(width)-m-w/2
	top, bottom := m+h/2, float64(height)-m-h/2
	candidates := []Rect{
		{left, top, w, h},
		{right, top, w, h},
		{left, bottom, w, h},
		{right, bottom, w, h},
	}

	best := candidates[0]
	bestOverlap := math.MaxFloat64
	for _, cand := range candidates {
		total := 0.0
		for _, obs := range obstacles {
			total += RectOverlap(cand, obs)
		}
		if total == 0 {
			return cand
		}
		if total < bestOverlap {
			best, bestOverlap = cand, total
		}
	}
	return best
}

// LegendLines returns one caption per route.
func LegendLines(plan Plan) []string {
	lines := make([]string, len(plan))
	for i, r := range plan {
		nums := make([]string, len(r.Segments))
		for j, s := range r.Segments {
			nums[j] = fmt.Sprint(s + 1)
		}
		lines[i] = fmt.Sprintf("%s: %s", r.Algorithm, strings.Join(nums, ", "))
	}
	return lines
}

// DrawLegend writes the legend onto c. Text is rendered onto a black
// scratch image and copied across by non-black pixel, like the reference
// rasterizer.
func DrawLegend(c *raster.Canvas, g *star.Geometry, plan Plan) error {
	if len(plan) == 0 {
		return nil
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse legend font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    legendFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("legend face: %w", err)
	}
	defer face.Close()

	lines := LegendLines(plan)
	textW := 0
	for _, l := range lines {
		textW = max(textW, font.MeasureString(face, l).Ceil())
	}
	lineH := face.Metrics().Height.Ceil()
	boxW := float64(2*legendPad + legendSwatch + legendPad + textW)
	boxH := float64(2*legendPad + lineH*len(lines))

	w, h := c.Size()
	box := PlaceBox(w, h, boxW, boxH, []Rect{StarBounds(g)})
	x0 := int(box.X - box.W/2)
	y0 := int(box.Y - box.H/2)

	scratch := image.NewRGBA(c.Bounds())
	draw.Draw(scratch, scratch.Bounds(), image.NewUniform(raster.Black), image.Point{}, draw.Src)

	ascent := face.Metrics().Ascent.Ceil()
	for i, r := range plan {
		top := y0 + legendPad + i*lineH
		sw := image.Rect(x0+legendPad, top+(lineH-legendSwatch)/2, x0+legendPad+legendSwatch, top+(lineH+legendSwatch)/2)
		draw.Draw(scratch, sw, image.NewUniform(r.Color), image.Point{}, draw.Src)

		d := &font.Drawer{
			Dst:  scratch,
			Src:  image.NewUniform(r.Color),
			Face: face,
			Dot:  fixed.P(x0+2*legendPad+legendSwatch, top+ascent),
		}
		d.DrawString(lines[i])
	}

	raster.CopyNonBlack(c, scratch)
	Logger().Info("legend drawn", "x", x0, "y", y0, "w", int(boxW), "h", int(boxH))
	return nil
}
