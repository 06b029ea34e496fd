package layout

import (
	"testing"

	"sketchboard/internal/domain"
)

func el(id string, w, h float64) domain.Element {
	return domain.Element{ID: id, Type: domain.TypeRectangle, Width: w, Height: h}
}

func TestArrangeGrid_TwoColumns(t *testing.T) {
	le := NewEngine()
	elements := []domain.Element{
		el("a", 100, 50), el("b", 100, 80),
		el("c", 100, 50), el("d", 100, 50),
	}
	origin := domain.Box{X: 10, Y: 20}

	got := le.ArrangeGrid(elements, origin, 2, 20, 30)

	want := []Placement{
		{ID: "a", X: 10, Y: 20},
		{ID: "b", X: 130, Y: 20},
		// second row starts below the tallest first-row member (80) + gapY
		{ID: "c", X: 10, Y: 130},
		{ID: "d", X: 130, Y: 130},
	}
	if len(got) != len(want) {
		t.Fatalf("placements = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestArrangeGrid_SingleColumn(t *testing.T) {
	le := NewEngine()
	got := le.ArrangeGrid([]domain.Element{el("a", 50, 50), el("b", 50, 50)},
		domain.Box{}, 1, 0, 10)
	if got[0].Y != 0 || got[1].Y != 60 {
		t.Errorf("single column stacking wrong: %+v", got)
	}
	if got[0].X != 0 || got[1].X != 0 {
		t.Errorf("single column x drifted: %+v", got)
	}
}

func TestArrangeGrid_DefaultGaps(t *testing.T) {
	le := NewEngine()
	got := le.ArrangeGrid([]domain.Element{el("a", 100, 50), el("b", 100, 50)},
		domain.Box{}, 2, 0, 0)
	if got[1].X != 100+DefaultGap {
		t.Errorf("default gapX not applied: %+v", got[1])
	}
}

func TestNextPosition_EmptyCanvas(t *testing.T) {
	le := NewEngine()
	x, y := le.NextPosition(nil, 200, 100)
	if x != 0 || y != 0 {
		t.Errorf("expected (0, 0) for empty canvas, got (%.0f, %.0f)", x, y)
	}
}

func TestNextPosition_AvoidsExisting(t *testing.T) {
	le := NewEngine()
	existing := []domain.Element{
		{ID: "a", X: 0, Y: 0, Width: 300, Height: 200},
		{ID: "b", X: 400, Y: 0, Width: 300, Height: 200},
	}
	x, y := le.NextPosition(existing, 200, 100)

	candidate := rect{x, y, 200, 100}
	for _, e := range existing {
		padded := rect{e.X - Padding, e.Y - Padding, e.Width + Padding*2, e.Height + Padding*2}
		if candidate.intersects(padded) {
			t.Errorf("position (%.0f, %.0f) overlaps element %s", x, y, e.ID)
		}
	}
}

func TestSnap(t *testing.T) {
	le := NewEngine()
	tests := []struct {
		input, want float64
	}{
		{0, 0},
		{9, 0},
		{10, 20},
		{20, 20},
		{31, 40},
	}
	for _, tt := range tests {
		if got := le.Snap(tt.input); got != tt.want {
			t.Errorf("Snap(%.0f) = %.0f, want %.0f", tt.input, got, tt.want)
		}
	}
}
