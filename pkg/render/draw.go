package render

import (
	"log/slog"

	"github.com/ha1tch/starlines/pkg/raster"
	"github.com/ha1tch/starlines/pkg/star"
)

// Options configures Draw.
type Options struct {
	Width, Height int
	Backend       raster.Backend // library behind the Reference algorithm
	VertexColor   raster.Color
	CenterColor   raster.Color
	NoMarkers     bool
	Legend        bool
}

// DefaultOptions is the 600x400 canvas with white vertex and cyan centre
// markers.
func DefaultOptions() Options {
	return Options{
		Width:       600,
		Height:      400,
		Backend:     raster.BackendGG,
		VertexColor: raster.White,
		CenterColor: raster.Cyan,
	}
}

// Stroke records one segment drawn by Draw.
type Stroke struct {
	Route     int
	Algorithm Algorithm
	Color     raster.Color
	Index     int
	Segment   raster.Segment
}

// Skip records a plan entry Draw could not honour.
type Skip struct {
	Route  int
	Index  int // -1 when the whole route was skipped
	Reason string
}

// Report lists what Draw did, in order.
type Report struct {
	Strokes []Stroke
	Skipped []Skip
}

// StrokesFor returns the strokes drawn by one route.
func (r *Report) StrokesFor(route int) []Stroke {
	var out []Stroke
	for _, s := range r.Strokes {
		if s.Route == route {
			out = append(out, s)
		}
	}
	return out
}

// Draw renders g: every routed segment with its algorithm, then the
// optional legend, then the vertex markers and finally the centre marker.
// Segment indices outside the star are skipped and reported.
func Draw(g *star.Geometry, plan Plan, opts Options) (*raster.Canvas, *Report) {
	log := Logger()
	c := raster.NewCanvas(opts.Width, opts.Height)
	rep := &Report{}

	log.Info("drawing segments", "routes", len(plan), "segments", len(g.Edges))
	for ri, route := range plan {
		line := route.Algorithm.Line(opts.Backend)
		if line == nil {
			log.Warn("unknown algorithm", "route", ri, "algorithm", int(route.Algorithm))
			rep.Skipped = append(rep.Skipped, Skip{Route: ri, Index: -1, Reason: "unknown algorithm"})
			continue
		}
		for _, idx := range route.Segments {
			edge, err := g.Edge(idx)
			if err != nil {
				log.Warn("segment skipped", "route", ri, "index", idx, "err", err)
				rep.Skipped = append(rep.Skipped, Skip{Route: ri, Index: idx, Reason: err.Error()})
				continue
			}
			line(c, edge.Segment.A, edge.Segment.B, route.Color)
			rep.Strokes = append(rep.Strokes, Stroke{
				Route:     ri,
				Algorithm: route.Algorithm,
				Color:     route.Color,
				Index:     idx,
				Segment:   edge.Segment,
			})
			log.Debug("segment drawn",
				"algorithm", route.Algorithm.Key(),
				"index", idx,
				slog.Group("segment", "from", edge.Segment.A.String(), "to", edge.Segment.B.String()))
		}
	}

	if opts.Legend {
		if err := DrawLegend(c, g, plan); err != nil {
			log.Warn("legend skipped", "err", err)
		}
	}
	// Markers go last; nothing may cover them.
	if !opts.NoMarkers {
		DrawMarkers(c, g, opts.VertexColor, opts.CenterColor)
		log.Info("markers drawn", "vertices", len(g.Vertices))
	}
	return c, rep
}

// DrawMarkers draws a disk on every vertex and a diamond on the centre.
func DrawMarkers(p raster.Plotter, g *star.Geometry, vertex, center raster.Color) {
	for _, v := range g.Vertices {
		raster.DrawVertexMarker(p, v, vertex)
	}
	raster.DrawCenterMarker(p, g.Center, center)
}
