package domain

// ElementType discriminates the element variants a scene can hold.
type ElementType string

const (
	TypeRectangle  ElementType = "rectangle"
	TypeEllipse    ElementType = "ellipse"
	TypeDiamond    ElementType = "diamond"
	TypeLine       ElementType = "line"
	TypeArrow      ElementType = "arrow"
	TypeText       ElementType = "text"
	TypeImage      ElementType = "image"
	TypeFrame      ElementType = "frame"
	TypeMagicFrame ElementType = "magicframe"
)

// Valid reports whether t is one of the known element kinds.
func (t ElementType) Valid() bool {
	switch t {
	case TypeRectangle, TypeEllipse, TypeDiamond, TypeLine, TypeArrow,
		TypeText, TypeImage, TypeFrame, TypeMagicFrame:
		return true
	}
	return false
}

// CanContainLabel reports whether elements of this kind may carry a bound label.
func (t ElementType) CanContainLabel() bool {
	switch t {
	case TypeRectangle, TypeEllipse, TypeDiamond, TypeArrow, TypeLine:
		return true
	}
	return false
}

// IsConnector reports whether elements of this kind carry start/end bindings.
func (t ElementType) IsConnector() bool {
	return t == TypeArrow || t == TypeLine
}

// IsFrame reports whether elements of this kind carry a children list.
func (t ElementType) IsFrame() bool {
	return t == TypeFrame || t == TypeMagicFrame
}

// Label is text bound to a container-capable element.
type Label struct {
	Text          string  `json:"text"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontFamily    string  `json:"fontFamily,omitempty"`
	TextAlign     string  `json:"textAlign,omitempty"`
	VerticalAlign string  `json:"verticalAlign,omitempty"`
}

// Binding attaches a connector endpoint to another element by id.
// The referenced element must exist in the scene; the store drops
// bindings whose target is removed rather than leaving them dangling.
type Binding struct {
	ElementID string `json:"elementId"`
	Arrowhead string `json:"arrowhead,omitempty"`
}

// Element is a single drawable item in the scene.
// IDs are caller-supplied and stable — the store never regenerates them.
// Coordinates: origin top-left, x grows right, y grows down, angle in
// radians clockwise.
type Element struct {
	ID     string      `json:"id"`
	Type   ElementType `json:"type"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Angle  float64     `json:"angle,omitempty"`

	// Style record
	StrokeColor     string  `json:"strokeColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	StrokeStyle     string  `json:"strokeStyle,omitempty"` // solid, dashed, dotted
	FillStyle       string  `json:"fillStyle,omitempty"`   // solid, hachure, zigzag, cross-hatch
	StrokeWidth     float64 `json:"strokeWidth,omitempty"`
	Opacity         float64 `json:"opacity,omitempty"` // 0-100
	Roughness       float64 `json:"roughness,omitempty"`

	Text     string      `json:"text,omitempty"`     // text elements
	Src      string      `json:"src,omitempty"`      // image elements
	Label    *Label      `json:"label,omitempty"`    // container-bound label
	Start    *Binding    `json:"start,omitempty"`    // arrow/line start binding
	End      *Binding    `json:"end,omitempty"`      // arrow/line end binding
	Points   [][]float64 `json:"points,omitempty"`   // line/arrow local points
	Children []string    `json:"children,omitempty"` // frame membership (not ownership)
}

// Clone returns a deep copy so callers can hand elements out without
// exposing the store's internal state to mutation.
func (e Element) Clone() Element {
	c := e
	if e.Label != nil {
		l := *e.Label
		c.Label = &l
	}
	if e.Start != nil {
		b := *e.Start
		c.Start = &b
	}
	if e.End != nil {
		b := *e.End
		c.End = &b
	}
	if e.Points != nil {
		c.Points = make([][]float64, len(e.Points))
		for i, p := range e.Points {
			c.Points[i] = append([]float64(nil), p...)
		}
	}
	if e.Children != nil {
		c.Children = append([]string(nil), e.Children...)
	}
	return c
}

// DisplayText returns the element's visible text, if any.
func (e Element) DisplayText() string {
	if e.Text != "" {
		return e.Text
	}
	if e.Label != nil {
		return e.Label.Text
	}
	return ""
}

// Summary is the compact element view returned by get_elements.
type Summary struct {
	ID              string      `json:"id"`
	Type            ElementType `json:"type"`
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	Width           float64     `json:"width,omitempty"`
	Height          float64     `json:"height,omitempty"`
	Angle           float64     `json:"angle,omitempty"`
	Text            string      `json:"text,omitempty"`
	StrokeColor     string      `json:"strokeColor,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
}

// Summarize builds the compact view of an element.
func (e Element) Summarize() Summary {
	return Summary{
		ID:              e.ID,
		Type:            e.Type,
		X:               e.X,
		Y:               e.Y,
		Width:           e.Width,
		Height:          e.Height,
		Angle:           e.Angle,
		Text:            e.DisplayText(),
		StrokeColor:     e.StrokeColor,
		BackgroundColor: e.BackgroundColor,
	}
}
