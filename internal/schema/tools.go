package schema

// Argument shapes for every tool on the dispatcher surface.
//
// Element objects and update patches are CLOSED: an unknown property is
// rejected instead of silently stored, so nothing unvalidated ever
// lands in the scene. Top-level tool objects tolerate omitted optional
// fields but reject stray keys for the same reason.

var elementTypes = []string{
	"rectangle", "ellipse", "diamond", "line", "arrow",
	"text", "image", "frame", "magicframe",
}

var (
	strokeStyles = []string{"solid", "dashed", "dotted"}
	fillStyles   = []string{"solid", "hachure", "zigzag", "cross-hatch"}
	arrowheads   = []string{"arrow", "triangle", "bar", "dot", "none"}
	textAligns   = []string{"left", "center", "right"}
	vertAligns   = []string{"top", "middle", "bottom"}
)

func labelField() Field {
	return Field{
		Type:   Object,
		Closed: true,
		Fields: map[string]Field{
			"text":          {Type: String, Required: true},
			"fontSize":      {Type: Number, Min: bound(0)},
			"fontFamily":    {Type: String},
			"textAlign":     {Type: String, Enum: textAligns},
			"verticalAlign": {Type: String, Enum: vertAligns},
		},
	}
}

func bindingField() Field {
	return Field{
		Type:   Object,
		Closed: true,
		Fields: map[string]Field{
			"elementId": {Type: String, Required: true},
			"arrowhead": {Type: String, Enum: arrowheads},
		},
	}
}

// styleFields are the shared style record properties.
func styleFields() map[string]Field {
	return map[string]Field{
		"strokeColor":     {Type: String},
		"backgroundColor": {Type: String},
		"strokeStyle":     {Type: String, Enum: strokeStyles},
		"fillStyle":       {Type: String, Enum: fillStyles},
		"strokeWidth":     {Type: Number, Min: bound(0)},
		"opacity":         {Type: Number, Min: bound(0), Max: bound(100)},
		"roughness":       {Type: Number, Min: bound(0)},
	}
}

// elementField is the full closed shape of one scene element.
func elementField(idRequired bool) Field {
	fields := styleFields()
	fields["id"] = Field{Type: String, Required: idRequired}
	fields["type"] = Field{Type: String, Required: true, Enum: elementTypes}
	fields["x"] = Field{Type: Number, Required: true}
	fields["y"] = Field{Type: Number, Required: true}
	// Signed: arrows and lines store their endpoint vector as
	// width/height, so leftward or upward connectors are negative.
	fields["width"] = Field{Type: Number}
	fields["height"] = Field{Type: Number}
	fields["angle"] = Field{Type: Number}
	fields["text"] = Field{Type: String}
	fields["src"] = Field{Type: String}
	fields["label"] = labelField()
	fields["start"] = bindingField()
	fields["end"] = bindingField()
	fields["points"] = Field{Type: Array, Elem: &Field{Type: Array, Elem: &Field{Type: Number}}}
	fields["children"] = Field{Type: Array, Elem: &Field{Type: String}}
	return Field{Type: Object, Closed: true, Fields: fields}
}

// patchField is the closed shape of update_elements props: style and
// geometry only — id and type are immutable. width/height are signed
// for the same reason as in elementField.
func patchField() Field {
	fields := styleFields()
	fields["x"] = Field{Type: Number}
	fields["y"] = Field{Type: Number}
	fields["width"] = Field{Type: Number}
	fields["height"] = Field{Type: Number}
	fields["angle"] = Field{Type: Number}
	fields["text"] = Field{Type: String}
	fields["src"] = Field{Type: String}
	fields["label"] = labelField()
	fields["start"] = bindingField()
	fields["end"] = bindingField()
	fields["points"] = Field{Type: Array, Elem: &Field{Type: Array, Elem: &Field{Type: Number}}}
	fields["children"] = Field{Type: Array, Elem: &Field{Type: String}}
	return Field{Type: Object, Closed: true, Fields: fields}
}

func boxField() Field {
	return Field{
		Type:   Object,
		Closed: true,
		Fields: map[string]Field{
			"x":      {Type: Number, Required: true},
			"y":      {Type: Number, Required: true},
			"width":  {Type: Number, Required: true, Min: bound(0)},
			"height": {Type: Number, Required: true, Min: bound(0)},
		},
	}
}

func connectionStyleField() Field {
	fields := styleFields()
	fields["startArrowhead"] = Field{Type: String, Enum: arrowheads}
	fields["endArrowhead"] = Field{Type: String, Enum: arrowheads}
	return Field{Type: Object, Closed: true, Fields: fields}
}

func init() {
	element := elementField(true)
	patch := patchField()

	Register("set_scene", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"elements": {Type: Array, Elem: &element},
		},
	})

	Register("add_elements", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"elements": {Type: Array, Required: true, NonEmpty: true, Elem: &element},
		},
	})

	requiredPatch := patch
	requiredPatch.Required = true
	update := Field{
		Type:   Object,
		Closed: true,
		Fields: map[string]Field{
			"id":    {Type: String, Required: true},
			"props": requiredPatch,
		},
	}
	Register("update_elements", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"updates": {Type: Array, Required: true, NonEmpty: true, Elem: &update},
		},
	})

	Register("remove_elements", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"ids": {Type: Array, Required: true, NonEmpty: true, Elem: &Field{Type: String}},
		},
	})

	within := boxField()
	Register("search_elements", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"type":         {Type: String, Enum: elementTypes},
			"textIncludes": {Type: String},
			"within":       within,
		},
	})

	connection := Field{
		Type:   Object,
		Closed: true,
		Fields: map[string]Field{
			"fromId": {Type: String, Required: true},
			"toId":   {Type: String, Required: true},
			"label":  {Type: String},
			"style":  connectionStyleField(),
		},
	}
	Register("connect_elements", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"connections": {Type: Array, Required: true, NonEmpty: true, Elem: &connection},
		},
	})

	Register("set_label", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"id":    {Type: String, Required: true},
			"label": {Type: String, Required: true},
		},
	})

	origin := Field{
		Type:     Object,
		Required: true,
		Closed:   true,
		Fields: map[string]Field{
			"x": {Type: Number, Required: true},
			"y": {Type: Number, Required: true},
		},
	}
	Register("layout_grid", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"ids":    {Type: Array, Required: true, NonEmpty: true, Elem: &Field{Type: String}},
			"origin": origin,
			"cols":   {Type: Number, Required: true, Int: true, Min: bound(1)},
			"gapX":   {Type: Number, Min: bound(0)},
			"gapY":   {Type: Number, Min: bound(0)},
		},
	})

	Register("suggest_position", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"width":  {Type: Number, Required: true, Min: bound(0)},
			"height": {Type: Number, Required: true, Min: bound(0)},
		},
	})

	Register("set_viewport", ObjectShape{
		Closed: true,
		Fields: map[string]Field{
			"x":    {Type: Number, Required: true},
			"y":    {Type: Number, Required: true},
			"zoom": {Type: Number, Required: true, Min: bound(0.01), Max: bound(100)},
		},
	})
}
