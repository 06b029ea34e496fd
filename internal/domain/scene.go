package domain

// SceneDocument is the persisted snapshot layout: a single JSON document
// holding every element in z-order (later elements draw on top).
type SceneDocument struct {
	Elements []Element `json:"elements"`
}

// Viewport is the camera state saved alongside the scene in the
// key-value settings namespace.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Box is an axis-aligned region used by search queries.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point (px, py) lies inside the box.
func (b Box) Contains(px, py float64) bool {
	return px >= b.X && px <= b.X+b.Width && py >= b.Y && py <= b.Y+b.Height
}

// Intersects reports whether two boxes overlap.
func (b Box) Intersects(o Box) bool {
	return b.X < o.X+o.Width && b.X+b.Width > o.X &&
		b.Y < o.Y+o.Height && b.Y+b.Height > o.Y
}
