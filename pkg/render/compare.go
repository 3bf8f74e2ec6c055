package render

import (
	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/star"
)

// Comparison holds, for one segment, how many pixels each algorithm lit
// and how many of them disagree with integer Bresenham.
type Comparison struct {
	Index   int
	Segment raster.Segment
	Pixels  [numAlgorithms]int
	Diff    [numAlgorithms]int // symmetric difference against IntBresenham
}

// Compare draws every segment of g with every algorithm on its own blank
// canvas.
func Compare(g *star.Geometry, opts Options) []Comparison {
	log := Logger()
	out := make([]Comparison, 0, len(g.Edges))
	for idx, e := range g.Edges {
		cmp := Comparison{Index: idx, Segment: e.Segment}
		var sets [numAlgorithms]map[raster.Point]bool
		for a := Algorithm(0); a < numAlgorithms; a++ {
			c := raster.NewCanvas(opts.Width, opts.Height)
			a.Line(opts.Backend)(c, e.Segment.A, e.Segment.B, raster.White)
			sets[a] = litPixels(c)
			cmp.Pixels[a] = len(sets[a])
		}
		for a := Algorithm(0); a < numAlgorithms; a++ {
			cmp.Diff[a] = symmetricDiff(sets[IntBresenham], sets[a])
		}
		log.Debug("segment compared", "index", idx, "pixels", cmp.Pixels[:], "diff", cmp.Diff[:])
		out = append(out, cmp)
	}
	return out
}

func litPixels(c *raster.Canvas) map[raster.Point]bool {
	set := make(map[raster.Point]bool)
	for _, p := range c.Points(func(col raster.Color) bool { return !col.IsBlack() }) {
		set[p] = true
	}
	return set
}

func symmetricDiff(a, b map[raster.Point]bool) int {
	n := 0
	for p := range a {
		if !b[p] {
			n++
		}
	}
	for p := range b {
		if !a[p] {
			n++
		}
	}
	return n
}
