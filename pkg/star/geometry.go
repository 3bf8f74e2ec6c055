// Package star computes skip-step star polygons: vertices evenly spaced on
// a circle and the segments that join every M-th vertex.
package star

import (
	"errors"
	"fmt"
	"math"

	"github.com/ha1tch/starlines/pkg/raster"
)

// Defaults used by the eight-pointed star.
const (
	DefaultVertices = 8
	DefaultSkip     = 3
)

// Edge joins vertex I to vertex J. I < J; the segment is still drawn in
// the direction the edge was first encountered.
type Edge struct {
	I, J    int
	Segment raster.Segment
}

// Geometry is an immutable star polygon.
type Geometry struct {
	N, M     int
	Radius   int
	Center   raster.Point
	Vertices []raster.Point
	Edges    []Edge
}

// Default returns the eight-pointed, skip-three star.
func Default(radius int, center raster.Point) (*Geometry, error) {
	return New(DefaultVertices, DefaultSkip, radius, center)
}

// New builds a star with n vertices on a circle of the given radius,
// connecting each vertex i to (i+m) mod n.
func New(n, m, radius int, center raster.Point) (*Geometry, error) {
	if n < 3 {
		return nil, fmt.Errorf("star needs at least 3 vertices, got %d", n)
	}
	if m%n == 0 {
		return nil, fmt.Errorf("skip %d joins every vertex to itself", m)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %d", radius)
	}

	g := &Geometry{
		N:        n,
		M:        m,
		Radius:   radius,
		Center:   center,
		Vertices: Vertices(n, radius, center),
	}
	for _, k := range EdgeKeys(n, m) {
		g.Edges = append(g.Edges, Edge{
			I: k[0], J: k[1],
			Segment: raster.Segment{A: g.Vertices[k[2]], B: g.Vertices[k[3]]},
		})
	}
	return g, nil
}

// Vertices places n points on the circle, vertex 0 at the top and the
// rest clockwise in screen coordinates (y grows downward). Coordinates are
// rounded half to even.
func Vertices(n, radius int, center raster.Point) []raster.Point {
	pts := make([]raster.Point, n)
	r := float64(radius)
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		x := float64(center.X) + r*math.Cos(angle)
		y := float64(center.Y) + r*math.Sin(angle)
		pts[i] = raster.Pt(int(math.RoundToEven(x)), int(math.RoundToEven(y)))
	}
	return pts
}

// EdgeKeys walks i = 0..n-1 joining i to (i+m) mod n and returns each
// undirected edge once, in first-seen order, as {lo, hi, from, to}.
func EdgeKeys(n, m int) [][4]int {
	m = ((m % n) + n) % n
	seen := make(map[[2]int]bool)
	var keys [][4]int
	for i := 0; i < n; i++ {
		j := (i + m) % n
		lo, hi := min(i, j), max(i, j)
		if seen[[2]int{lo, hi}] {
			continue
		}
		seen[[2]int{lo, hi}] = true
		keys = append(keys, [4]int{lo, hi, i, j})
	}
	return keys
}

// Segments returns the edge segments in drawing order.
func (g *Geometry) Segments() []raster.Segment {
	segs := make([]raster.Segment, len(g.Edges))
	for i, e := range g.Edges {
		segs[i] = e.Segment
	}
	return segs
}

// Components counts the connected components of the edge graph,
// isolated vertices included.
func (g *Geometry) Components() int {
	uf := newUnionFind(g.N)
	for _, e := range g.Edges {
		uf.union(e.I, e.J)
	}
	return uf.count
}

// IsSingleCycle reports whether the edges form one closed loop through
// every vertex.
func (g *Geometry) IsSingleCycle() bool {
	if len(g.Edges) != g.N {
		return false
	}
	degree := make([]int, g.N)
	for _, e := range g.Edges {
		degree[e.I]++
		degree[e.J]++
	}
	for _, d := range degree {
		if d != 2 {
			return false
		}
	}
	return g.Components() == 1
}

// SegmentLength is the Euclidean length of the first segment. All
// segments of a regular star share it up to rounding.
func (g *Geometry) SegmentLength() float64 {
	if len(g.Edges) == 0 {
		return 0
	}
	s := g.Edges[0].Segment
	return math.Hypot(float64(s.B.X-s.A.X), float64(s.B.Y-s.A.Y))
}

// VertexAngle is the angle between neighbouring vertices in degrees.
func (g *Geometry) VertexAngle() float64 {
	return 360 / float64(g.N)
}

// Bearing returns vertex i's angle in degrees, clockwise from the top.
func (g *Geometry) Bearing(i int) float64 {
	return float64(i) * g.VertexAngle()
}

// Relative returns vertex i relative to the center.
func (g *Geometry) Relative(i int) raster.Point {
	return g.Vertices[i].Sub(g.Center)
}

// ErrNoEdge is returned by Edge for an index outside the edge list.
var ErrNoEdge = errors.New("no such edge")

// Edge returns edge idx.
func (g *Geometry) Edge(idx int) (Edge, error) {
	if idx < 0 || idx >= len(g.Edges) {
		return Edge{}, fmt.Errorf("edge %d of %d: %w", idx, len(g.Edges), ErrNoEdge)
	}
	return g.Edges[idx], nil
}

type unionFind struct {
	parent []int
	count  int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), count: n}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
		uf.count--
	}
}
