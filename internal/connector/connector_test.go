package connector

import (
	"math"
	"testing"

	"sketchboard/internal/domain"
	"sketchboard/internal/scene"
)

func sceneWith(elements ...domain.Element) *scene.Store {
	s := scene.NewStore()
	s.Add(elements)
	return s
}

func TestConnect_AnchorsOnBoundaries(t *testing.T) {
	// Two squares side by side: a at (0,0)-(100,100), b at (300,0)-(400,100)
	s := sceneWith(
		domain.Element{ID: "a", Type: domain.TypeRectangle, X: 0, Y: 0, Width: 100, Height: 100},
		domain.Element{ID: "b", Type: domain.TypeRectangle, X: 300, Y: 0, Width: 100, Height: 100},
	)

	res := Connect(s, []Request{{FromID: "a", ToID: "b"}})
	if len(res.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", res.Failed)
	}
	if len(res.Created) != 1 {
		t.Fatalf("created %d arrows, want 1", len(res.Created))
	}

	arrow := res.Created[0]
	// Start on a's right edge midpoint, end on b's left edge midpoint
	if arrow.X != 100 || arrow.Y != 50 {
		t.Errorf("arrow origin = (%v, %v), want (100, 50)", arrow.X, arrow.Y)
	}
	if arrow.Width != 200 || arrow.Height != 0 {
		t.Errorf("arrow vector = (%v, %v), want (200, 0)", arrow.Width, arrow.Height)
	}
	if arrow.Start == nil || arrow.Start.ElementID != "a" {
		t.Errorf("start binding = %+v, want a", arrow.Start)
	}
	if arrow.End == nil || arrow.End.ElementID != "b" {
		t.Errorf("end binding = %+v, want b", arrow.End)
	}
	if arrow.ID == "" {
		t.Error("arrow has no generated id")
	}
}

func TestConnect_EllipseEndpoint(t *testing.T) {
	// Ellipse centered at (0,0) rx=50 ry=25; square far right
	s := sceneWith(
		domain.Element{ID: "e", Type: domain.TypeEllipse, X: -50, Y: -25, Width: 100, Height: 50},
		domain.Element{ID: "r", Type: domain.TypeRectangle, X: 950, Y: -50, Width: 100, Height: 100},
	)

	res := Connect(s, []Request{{FromID: "e", ToID: "r"}})
	if len(res.Created) != 1 {
		t.Fatalf("failures: %v", res.Failed)
	}
	arrow := res.Created[0]
	if math.Abs(arrow.X-50) > 1e-6 || math.Abs(arrow.Y-0) > 1e-6 {
		t.Errorf("arrow starts at (%v, %v), want (50, 0) on the ellipse boundary", arrow.X, arrow.Y)
	}
}

func TestConnect_PartialFailure(t *testing.T) {
	s := sceneWith(
		domain.Element{ID: "a", Type: domain.TypeRectangle, X: 0, Y: 0, Width: 10, Height: 10},
		domain.Element{ID: "b", Type: domain.TypeRectangle, X: 50, Y: 0, Width: 10, Height: 10},
		domain.Element{ID: "c", Type: domain.TypeRectangle, X: 0, Y: 50, Width: 10, Height: 10},
	)

	res := Connect(s, []Request{
		{FromID: "a", ToID: "b"},
		{FromID: "b", ToID: "ghost"},
		{FromID: "a", ToID: "c"},
	})

	if len(res.Created) != 2 {
		t.Errorf("created = %d, want 2", len(res.Created))
	}
	if len(res.Failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(res.Failed))
	}
	f := res.Failed[0]
	if f.FromID != "b" || f.ToID != "ghost" || f.Reason == "" {
		t.Errorf("failure entry = %+v", f)
	}
}

func TestConnect_SelfConnectionFails(t *testing.T) {
	s := sceneWith(domain.Element{ID: "a", Type: domain.TypeRectangle, X: 0, Y: 0, Width: 10, Height: 10})
	res := Connect(s, []Request{{FromID: "a", ToID: "a"}})
	if len(res.Created) != 0 || len(res.Failed) != 1 {
		t.Errorf("self connection should fail: %+v", res)
	}
}

func TestConnect_LabelAndStyle(t *testing.T) {
	s := sceneWith(
		domain.Element{ID: "a", Type: domain.TypeRectangle, X: 0, Y: 0, Width: 10, Height: 10},
		domain.Element{ID: "b", Type: domain.TypeRectangle, X: 100, Y: 0, Width: 10, Height: 10},
	)

	res := Connect(s, []Request{{
		FromID: "a", ToID: "b",
		Label: "calls",
		Style: &Style{StrokeColor: "#ff0000", StrokeStyle: "dashed", EndArrowhead: "triangle"},
	}})
	if len(res.Created) != 1 {
		t.Fatalf("failures: %v", res.Failed)
	}
	arrow := res.Created[0]
	if arrow.Label == nil || arrow.Label.Text != "calls" {
		t.Errorf("label = %+v, want calls", arrow.Label)
	}
	if arrow.StrokeColor != "#ff0000" || arrow.StrokeStyle != "dashed" {
		t.Errorf("style not applied: %+v", arrow)
	}
	if arrow.End.Arrowhead != "triangle" {
		t.Errorf("end arrowhead = %q, want triangle", arrow.End.Arrowhead)
	}
}

func TestConnect_UniqueGeneratedIDs(t *testing.T) {
	s := sceneWith(
		domain.Element{ID: "a", Type: domain.TypeRectangle, X: 0, Y: 0, Width: 10, Height: 10},
		domain.Element{ID: "b", Type: domain.TypeRectangle, X: 100, Y: 0, Width: 10, Height: 10},
	)
	res := Connect(s, []Request{{FromID: "a", ToID: "b"}, {FromID: "b", ToID: "a"}})
	if len(res.Created) != 2 {
		t.Fatalf("failures: %v", res.Failed)
	}
	if res.Created[0].ID == res.Created[1].ID {
		t.Error("generated arrow ids collide")
	}
}
