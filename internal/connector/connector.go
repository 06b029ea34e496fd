// Package connector compiles connection requests into bound arrow
// elements, anchoring each endpoint to the referenced shape's boundary.
package connector

import (
	"fmt"

	"github.com/google/uuid"

	"sketchboard/internal/domain"
	"sketchboard/internal/geometry"
	"sketchboard/internal/scene"
)

// Request is one transient connection input. It is compiled into an
// arrow element and never stored as-is.
type Request struct {
	FromID string
	ToID   string
	Label  string
	Style  *Style
}

// Style overrides for the generated arrow.
type Style struct {
	StrokeColor    string
	StrokeStyle    string
	StrokeWidth    float64
	StartArrowhead string
	EndArrowhead   string
}

// Failure records why one connection in a batch could not be built.
type Failure struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Reason string `json:"reason"`
}

// Result partitions a batch into created arrows and failures.
type Result struct {
	Created []domain.Element
	Failed  []Failure
}

// Connect resolves each request against the current scene. Failures
// are collected per request and never abort the batch. The returned
// arrows are NOT added to the store — the caller owns that, so a batch
// can be validated, built, and committed in one place.
func Connect(store *scene.Store, reqs []Request) Result {
	var res Result
	for _, r := range reqs {
		arrow, err := connectOne(store, r)
		if err != nil {
			res.Failed = append(res.Failed, Failure{FromID: r.FromID, ToID: r.ToID, Reason: err.Error()})
			continue
		}
		res.Created = append(res.Created, arrow)
	}
	return res
}

func connectOne(store *scene.Store, r Request) (domain.Element, error) {
	from, ok := store.Get(r.FromID)
	if !ok {
		return domain.Element{}, fmt.Errorf("element %q not found", r.FromID)
	}
	to, ok := store.Get(r.ToID)
	if !ok {
		return domain.Element{}, fmt.Errorf("element %q not found", r.ToID)
	}
	if r.FromID == r.ToID {
		return domain.Element{}, fmt.Errorf("cannot connect %q to itself", r.FromID)
	}

	fromShape := shapeOf(from)
	toShape := shapeOf(to)

	// Anchor each endpoint on its own boundary, aimed at the other center
	start := geometry.BoundaryPoint(fromShape, toShape.Bounds.Center())
	end := geometry.BoundaryPoint(toShape, fromShape.Bounds.Center())
	delta := end.Sub(start)

	arrow := domain.Element{
		ID:          uuid.New().String(),
		Type:        domain.TypeArrow,
		X:           start.X,
		Y:           start.Y,
		Width:       delta.X,
		Height:      delta.Y,
		Points:      [][]float64{{0, 0}, {delta.X, delta.Y}},
		StrokeColor: "#1e1e1e",
		StrokeWidth: 2,
		Start:       &domain.Binding{ElementID: r.FromID},
		End:         &domain.Binding{ElementID: r.ToID, Arrowhead: "arrow"},
	}
	if r.Label != "" {
		arrow.Label = &domain.Label{Text: r.Label}
	}
	if r.Style != nil {
		applyStyle(&arrow, r.Style)
	}
	return arrow, nil
}

func applyStyle(arrow *domain.Element, st *Style) {
	if st.StrokeColor != "" {
		arrow.StrokeColor = st.StrokeColor
	}
	if st.StrokeStyle != "" {
		arrow.StrokeStyle = st.StrokeStyle
	}
	if st.StrokeWidth > 0 {
		arrow.StrokeWidth = st.StrokeWidth
	}
	if st.StartArrowhead != "" {
		arrow.Start.Arrowhead = st.StartArrowhead
	}
	if st.EndArrowhead != "" {
		arrow.End.Arrowhead = st.EndArrowhead
	}
}

// shapeOf maps an element onto the geometry engine's outline kinds.
// Anything that is not an ellipse or diamond anchors on its bounding
// box, which matches how the renderer draws frames, images, and text.
func shapeOf(e domain.Element) geometry.Shape {
	kind := geometry.KindRectangle
	switch e.Type {
	case domain.TypeEllipse:
		kind = geometry.KindEllipse
	case domain.TypeDiamond:
		kind = geometry.KindDiamond
	}
	return geometry.Shape{
		Kind:   kind,
		Bounds: geometry.Bounds{X: e.X, Y: e.Y, W: e.Width, H: e.Height},
	}
}
