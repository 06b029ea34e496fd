package domain

// ApplyPatch shallow-merges validated patch properties onto an element.
// The schema layer guarantees props only contains known keys with the
// right JSON types, so conversions here cannot fail for validated input.
func (e *Element) ApplyPatch(props map[string]any) {
	for key, val := range props {
		switch key {
		case "x":
			e.X = asFloat(val)
		case "y":
			e.Y = asFloat(val)
		case "width":
			e.Width = asFloat(val)
		case "height":
			e.Height = asFloat(val)
		case "angle":
			e.Angle = asFloat(val)
		case "strokeColor":
			e.StrokeColor, _ = val.(string)
		case "backgroundColor":
			e.BackgroundColor, _ = val.(string)
		case "strokeStyle":
			e.StrokeStyle, _ = val.(string)
		case "fillStyle":
			e.FillStyle, _ = val.(string)
		case "strokeWidth":
			e.StrokeWidth = asFloat(val)
		case "opacity":
			e.Opacity = asFloat(val)
		case "roughness":
			e.Roughness = asFloat(val)
		case "text":
			e.Text, _ = val.(string)
		case "src":
			e.Src, _ = val.(string)
		case "label":
			if m, ok := val.(map[string]any); ok {
				e.Label = labelFromMap(m)
			}
		case "start":
			if m, ok := val.(map[string]any); ok {
				e.Start = bindingFromMap(m)
			}
		case "end":
			if m, ok := val.(map[string]any); ok {
				e.End = bindingFromMap(m)
			}
		case "points":
			if pts, ok := val.([]any); ok {
				e.Points = pointsFromList(pts)
			}
		case "children":
			if ids, ok := val.([]any); ok {
				e.Children = stringsFromList(ids)
			}
		}
	}
}

func labelFromMap(m map[string]any) *Label {
	l := &Label{}
	l.Text, _ = m["text"].(string)
	l.FontSize = asFloat(m["fontSize"])
	l.FontFamily, _ = m["fontFamily"].(string)
	l.TextAlign, _ = m["textAlign"].(string)
	l.VerticalAlign, _ = m["verticalAlign"].(string)
	return l
}

func bindingFromMap(m map[string]any) *Binding {
	b := &Binding{}
	b.ElementID, _ = m["elementId"].(string)
	b.Arrowhead, _ = m["arrowhead"].(string)
	return b
}

func pointsFromList(list []any) [][]float64 {
	pts := make([][]float64, 0, len(list))
	for _, raw := range list {
		pair, ok := raw.([]any)
		if !ok {
			continue
		}
		p := make([]float64, 0, len(pair))
		for _, v := range pair {
			p = append(p, asFloat(v))
		}
		pts = append(pts, p)
	}
	return pts
}

func stringsFromList(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asFloat extracts a float64 from decoded JSON, tolerating ints from
// hand-built test fixtures.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
