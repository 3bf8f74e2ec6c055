// Package render routes star segments to line algorithms and produces the
// finished canvas.
package render

import (
	"fmt"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/starfile"
)

// Algorithm identifies one line rasterizer.
type Algorithm int

const (
	IntBresenham Algorithm = iota
	DDA
	FloatBresenham
	Reference
	numAlgorithms
)

// Info describes an algorithm table entry.
type Info struct {
	Kind Algorithm
	Key  string // config name
	Name string // display name
}

var algorithms = [numAlgorithms]Info{
	IntBresenham:   {IntBresenham, "bresenham-int", "Integer Bresenham"},
	DDA:            {DDA, "dda", "DDA"},
	FloatBresenham: {FloatBresenham, "bresenham-float", "Float Bresenham"},
	Reference:      {Reference, "reference", "Reference"},
}

// Algorithms lists every algorithm in table order.
func Algorithms() []Info {
	out := make([]Info, len(algorithms))
	copy(out, algorithms[:])
	return out
}

// ParseAlgorithm looks up an algorithm by config name.
func ParseAlgorithm(key string) (Algorithm, error) {
	for _, info := range algorithms {
		if info.Key == key {
			return info.Kind, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", key)
}

// Valid reports whether a is in the table.
func (a Algorithm) Valid() bool {
	return a >= 0 && a < numAlgorithms
}

// String returns the display name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithms[a].Name
}

// Key returns the config name.
func (a Algorithm) Key() string {
	if !a.Valid() {
		return ""
	}
	return algorithms[a].Key
}

// Line returns the rasterizer; b selects the library behind Reference.
func (a Algorithm) Line(b raster.Backend) raster.LineFunc {
	switch a {
	case IntBresenham:
		return raster.BresenhamInt
	case DDA:
		return raster.DDA
	case FloatBresenham:
		return raster.BresenhamFloat
	case Reference:
		return raster.Reference(b)
	}
	return nil
}

// Route sends the listed segment indices to one algorithm in one colour.
type Route struct {
	Algorithm Algorithm
	Color     raster.Color
	Segments  []int
}

// Plan is the ordered list of routes; routes are drawn in order.
type Plan []Route

// DefaultPlan gives each algorithm two of the eight star segments.
func DefaultPlan() Plan {
	return Plan{
		{IntBresenham, raster.Red, []int{0, 4}},
		{DDA, raster.Green, []int{1, 5}},
		{FloatBresenham, raster.Blue, []int{2, 6}},
		{Reference, raster.Yellow, []int{3, 7}},
	}
}

// PlanFromConfig resolves config routes against the algorithm table.
func PlanFromConfig(routes []starfile.RouteConfig) (Plan, error) {
	plan := make(Plan, 0, len(routes))
	for i, rc := range routes {
		alg, err := ParseAlgorithm(rc.Algorithm)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
		col, err := rc.RGB()
		if err != nil {
			return nil, err
		}
		segs := make([]int, len(rc.Segments))
		copy(segs, rc.Segments)
		plan = append(plan, Route{Algorithm: alg, Color: col, Segments: segs})
	}
	return plan, nil
}
