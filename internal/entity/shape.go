package entity

import "math"

// ShapeKind selects the geometry used for bounds, hit-testing and drawing.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeTriangle:
		return "triangle"
	}
	return "unknown"
}

// Shape describes an interactor's geometry around its center.
// Rect uses W and H, circle uses R, triangle is equilateral with side W.
type Shape struct {
	Kind  ShapeKind
	W, H  float64
	R     float64
	Color string
}

func Rect(w, h float64, color string) Shape {
	return Shape{Kind: ShapeRect, W: w, H: h, Color: color}
}

func Circle(r float64, color string) Shape {
	return Shape{Kind: ShapeCircle, R: r, Color: color}
}

func Triangle(side float64, color string) Shape {
	return Shape{Kind: ShapeTriangle, W: side, Color: color}
}

// BoundsRadius is the distance kept from every viewport edge:
// max(w,h)/2 for rects, r for circles, the circumradius for triangles.
func (s Shape) BoundsRadius() float64 {
	switch s.Kind {
	case ShapeRect:
		return math.Max(s.W, s.H) / 2
	case ShapeCircle:
		return s.R
	case ShapeTriangle:
		return s.W / math.Sqrt(3)
	}
	return 0
}

// Contains reports whether (px,py) lies inside the shape centered at (cx,cy)
// drawn at the given scale.
func (s Shape) Contains(cx, cy, scale, px, py float64) bool {
	dx, dy := px-cx, py-cy
	switch s.Kind {
	case ShapeRect:
		return math.Abs(dx) <= s.W*scale/2 && math.Abs(dy) <= s.H*scale/2
	case ShapeCircle:
		r := s.R * scale
		return dx*dx+dy*dy <= r*r
	case ShapeTriangle:
		side := s.W * scale
		circ := side / math.Sqrt(3)
		ax, ay := 0.0, -circ
		bx, by := -side/2, circ/2
		qx, qy := side/2, circ/2
		d1 := cross(dx, dy, ax, ay, bx, by)
		d2 := cross(dx, dy, bx, by, qx, qy)
		d3 := cross(dx, dy, qx, qy, ax, ay)
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		return !(neg && pos)
	}
	return false
}

func cross(px, py, ax, ay, bx, by float64) float64 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}
