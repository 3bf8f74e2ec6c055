package raster

import "math"

// LineFunc draws the segment a-b onto p, both endpoints inclusive.
type LineFunc func(p Plotter, a, b Point, c Color)

// DDA draws a line by stepping a float position by a constant increment
// per axis and rounding each sample. It always performs
// max(|dx|, |dy|)+1 writes, which may repeat a pixel.
func DDA(p Plotter, a, b Point, c Color) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		p.Set(a.X, a.Y, c)
		return
	}

	xInc := float64(dx) / float64(steps)
	yInc := float64(dy) / float64(steps)
	x, y := float64(a.X), float64(a.Y)
	for i := 0; i <= steps; i++ {
		p.Set(round(x), round(y), c)
		x += xInc
		y += yInc
	}
}

// BresenhamFloat draws a line along its driving axis, accumulating the
// minor-axis error as a float and stepping when it reaches 0.5.
func BresenhamFloat(p Plotter, a, b Point, c Color) {
	x1, y1, x2, y2 := a.X, a.Y, b.X, b.Y

	steep := abs(y2-y1) > abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}

	dx := x2 - x1
	dy := abs(y2 - y1)
	var slope float64
	if dx != 0 {
		slope = float64(dy) / float64(dx)
	}
	ystep := -1
	if y1 < y2 {
		ystep = 1
	}

	errAcc := 0.0
	y := y1
	for x := x1; x <= x2; x++ {
		if steep {
			p.Set(y, x, c)
		} else {
			p.Set(x, y, c)
		}
		errAcc += slope
		if errAcc >= 0.5 {
			y += ystep
			errAcc -= 1.0
		}
	}
}

// BresenhamInt is the all-integer Bresenham variant walking from a to b
// with signed unit steps on both axes.
func BresenhamInt(p Plotter, a, b Point, c Color) {
	x, y := a.X, a.Y
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := -1, -1
	if a.X < b.X {
		sx = 1
	}
	if a.Y < b.Y {
		sy = 1
	}

	e := dx - dy
	for {
		p.Set(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
}

// round rounds half to even.
func round(v float64) int {
	return int(math.RoundToEven(v))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
