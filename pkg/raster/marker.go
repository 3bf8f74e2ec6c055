package raster

// Marker radii.
const (
	VertexMarkerRadius = 2
	CenterMarkerRadius = 3
	centerMarkerReach  = 4 // |dx|+|dy| bound for the diamond
)

// DrawVertexMarker draws a filled disk of radius 2 centred on at.
func DrawVertexMarker(p Plotter, at Point, c Color) {
	r := VertexMarkerRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx*dx+dy*dy <= r*r {
				p.Set(at.X+dx, at.Y+dy, c)
			}
		}
	}
}

// DrawCenterMarker draws a filled diamond (|dx|+|dy| <= 4) clipped to a
// 7x7 box centred on at.
func DrawCenterMarker(p Plotter, at Point, c Color) {
	r := CenterMarkerRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if abs(dx)+abs(dy) <= centerMarkerReach {
				p.Set(at.X+dx, at.Y+dy, c)
			}
		}
	}
}
