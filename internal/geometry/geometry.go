// Package geometry computes boundary anchor points for connector
// endpoints. It is pure: no scene access, no I/O, total for any input.
package geometry

import "math"

// Point is a 2D point or vector in scene units.
// Origin is top-left, x grows right, y grows down.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Cross returns the 2D cross product (scalar z-component).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the vector magnitude.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Bounds is an element's axis-aligned bounding box.
type Bounds struct {
	X, Y, W, H float64
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Kind selects which outline the boundary computation uses.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindDiamond
)

// Shape pairs a bounding box with its visible outline kind.
type Shape struct {
	Kind   Kind
	Bounds Bounds
}

// BoundaryPoint returns the point on the shape's outline along the ray
// from its center toward target. Degenerate shapes (zero width or
// height) and targets at the exact center return the center itself.
func BoundaryPoint(s Shape, target Point) Point {
	center := s.Bounds.Center()
	dir := target.Sub(center)
	if s.Bounds.W == 0 || s.Bounds.H == 0 || (dir.X == 0 && dir.Y == 0) {
		return center
	}

	switch s.Kind {
	case KindEllipse:
		return ellipseBoundary(s.Bounds, center, dir)
	case KindDiamond:
		return diamondBoundary(s.Bounds, center, dir)
	default:
		return rectangleBoundary(s.Bounds, center, dir)
	}
}

// rectangleBoundary clips the ray against the bounding box edges:
// t = min(halfW/|dx|, halfH/|dy|), with division by zero treated as +Inf.
func rectangleBoundary(b Bounds, center, dir Point) Point {
	tx := math.Inf(1)
	if dir.X != 0 {
		tx = (b.W / 2) / math.Abs(dir.X)
	}
	ty := math.Inf(1)
	if dir.Y != 0 {
		ty = (b.H / 2) / math.Abs(dir.Y)
	}
	return center.Add(dir.Mul(math.Min(tx, ty)))
}

// ellipseBoundary solves (t*dx/rx)^2 + (t*dy/ry)^2 = 1 for t.
func ellipseBoundary(b Bounds, center, dir Point) Point {
	rx := b.W / 2
	ry := b.H / 2
	t := 1 / math.Sqrt((dir.X*dir.X)/(rx*rx)+(dir.Y*dir.Y)/(ry*ry))
	return center.Add(dir.Mul(t))
}

// diamondBoundary casts the ray against the four edges joining the
// top/right/bottom/left midpoints and keeps the nearest forward hit.
func diamondBoundary(b Bounds, center, dir Point) Point {
	top := Point{X: b.X + b.W/2, Y: b.Y}
	right := Point{X: b.X + b.W, Y: b.Y + b.H/2}
	bottom := Point{X: b.X + b.W/2, Y: b.Y + b.H}
	left := Point{X: b.X, Y: b.Y + b.H/2}

	edges := [4][2]Point{
		{top, right},
		{right, bottom},
		{bottom, left},
		{left, top},
	}

	best := center
	bestT := math.Inf(1)
	for _, edge := range edges {
		if t, ok := raySegment(center, dir, edge[0], edge[1]); ok && t < bestT {
			bestT = t
			best = center.Add(dir.Mul(t))
		}
	}
	return best
}

// raySegment intersects the ray origin+t*dir (t >= 0) with segment a-b.
// Returns the ray parameter t of the hit, or ok=false when the segment
// is parallel or behind the origin.
func raySegment(origin, dir, a, b Point) (float64, bool) {
	seg := b.Sub(a)
	denom := dir.Cross(seg)
	if denom == 0 {
		return 0, false
	}
	ao := a.Sub(origin)
	t := ao.Cross(seg) / denom
	u := ao.Cross(dir) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
