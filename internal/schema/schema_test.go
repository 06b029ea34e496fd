package schema

import "testing"

func hasIssue(issues []Issue, path, code string) bool {
	for _, i := range issues {
		if i.Path == path && i.Code == code {
			return true
		}
	}
	return false
}

func validElement(id string) map[string]any {
	return map[string]any{
		"id":   id,
		"type": "rectangle",
		"x":    float64(10),
		"y":    float64(20),
	}
}

func TestValidate_AddElements_OK(t *testing.T) {
	args := map[string]any{
		"elements": []any{validElement("a"), validElement("b")},
	}
	if issues := Validate("add_elements", args); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	issues := Validate("add_elements", map[string]any{})
	if !hasIssue(issues, "elements", CodeRequired) {
		t.Errorf("expected required issue for elements, got %v", issues)
	}
}

func TestValidate_EmptyBatchRejected(t *testing.T) {
	issues := Validate("remove_elements", map[string]any{"ids": []any{}})
	if !hasIssue(issues, "ids", CodeEmpty) {
		t.Errorf("expected empty issue, got %v", issues)
	}
}

func TestValidate_ElementFieldIssues(t *testing.T) {
	el := validElement("a")
	el["type"] = "hexagon"
	el["opacity"] = float64(150)
	el["x"] = "not-a-number"
	issues := Validate("add_elements", map[string]any{"elements": []any{el}})

	if !hasIssue(issues, "elements[0].type", CodeEnum) {
		t.Errorf("expected enum issue for type, got %v", issues)
	}
	if !hasIssue(issues, "elements[0].opacity", CodeRange) {
		t.Errorf("expected range issue for opacity, got %v", issues)
	}
	if !hasIssue(issues, "elements[0].x", CodeType) {
		t.Errorf("expected type issue for x, got %v", issues)
	}
}

func TestValidate_ClosedElementRejectsUnknownField(t *testing.T) {
	el := validElement("a")
	el["glitter"] = true
	issues := Validate("add_elements", map[string]any{"elements": []any{el}})
	if !hasIssue(issues, "elements[0].glitter", CodeUnknownField) {
		t.Errorf("expected unknown_field issue, got %v", issues)
	}
}

func TestValidate_UpdatePatchClosed(t *testing.T) {
	args := map[string]any{
		"updates": []any{
			map[string]any{
				"id": "a",
				"props": map[string]any{
					"x":    float64(5),
					"id":   "evil", // ids are immutable
					"junk": "nope",
				},
			},
		},
	}
	issues := Validate("update_elements", args)
	if !hasIssue(issues, "updates[0].props.id", CodeUnknownField) {
		t.Errorf("expected patch to reject id, got %v", issues)
	}
	if !hasIssue(issues, "updates[0].props.junk", CodeUnknownField) {
		t.Errorf("expected patch to reject junk, got %v", issues)
	}
}

func TestValidate_OptionalFieldsMayBeOmitted(t *testing.T) {
	// search_elements has no required fields at all
	if issues := Validate("search_elements", map[string]any{}); len(issues) != 0 {
		t.Errorf("unexpected issues for empty search: %v", issues)
	}
	if issues := Validate("search_elements", map[string]any{"type": "ellipse"}); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestValidate_NestedBox(t *testing.T) {
	args := map[string]any{
		"within": map[string]any{"x": float64(0), "y": float64(0), "width": float64(-5)},
	}
	issues := Validate("search_elements", args)
	if !hasIssue(issues, "within.height", CodeRequired) {
		t.Errorf("expected required issue for height, got %v", issues)
	}
	if !hasIssue(issues, "within.width", CodeRange) {
		t.Errorf("expected range issue for width, got %v", issues)
	}
}

func TestValidate_ConnectElements(t *testing.T) {
	args := map[string]any{
		"connections": []any{
			map[string]any{"fromId": "a", "toId": "b"},
			map[string]any{"fromId": "a"},
		},
	}
	issues := Validate("connect_elements", args)
	if len(issues) != 1 || !hasIssue(issues, "connections[1].toId", CodeRequired) {
		t.Errorf("expected exactly one required issue for toId, got %v", issues)
	}
}

func TestValidate_LayoutGrid(t *testing.T) {
	args := map[string]any{
		"ids":    []any{"a", "b"},
		"origin": map[string]any{"x": float64(0), "y": float64(0)},
		"cols":   float64(0),
	}
	issues := Validate("layout_grid", args)
	if !hasIssue(issues, "cols", CodeRange) {
		t.Errorf("expected range issue for cols, got %v", issues)
	}
}

func TestValidate_SignedArrowExtents(t *testing.T) {
	// A connector from a right shape to a left shape stores its endpoint
	// vector as negative width/height. The scene's own arrows must pass
	// validation, or a get/set round-trip of a connected scene breaks.
	arrow := map[string]any{
		"id":     "a-to-b",
		"type":   "arrow",
		"x":      float64(300),
		"y":      float64(50),
		"width":  float64(-200),
		"height": float64(-30),
	}
	if issues := Validate("set_scene", map[string]any{"elements": []any{arrow}}); len(issues) != 0 {
		t.Errorf("leftward arrow rejected: %v", issues)
	}

	patch := map[string]any{
		"updates": []any{
			map[string]any{"id": "a-to-b", "props": map[string]any{"width": float64(-150)}},
		},
	}
	if issues := Validate("update_elements", patch); len(issues) != 0 {
		t.Errorf("signed width patch rejected: %v", issues)
	}
}

func TestValidate_LayoutGridColsMustBeWhole(t *testing.T) {
	args := map[string]any{
		"ids":    []any{"a", "b"},
		"origin": map[string]any{"x": float64(0), "y": float64(0)},
		"cols":   float64(2.5),
	}
	issues := Validate("layout_grid", args)
	if !hasIssue(issues, "cols", CodeType) {
		t.Errorf("expected whole-number issue for cols, got %v", issues)
	}
}

func TestValidate_UnregisteredToolPasses(t *testing.T) {
	// Unknown operations are rejected by the dispatcher before
	// validation; the validator itself stays permissive.
	if issues := Validate("no_such_tool", map[string]any{"whatever": 1}); issues != nil {
		t.Errorf("expected nil issues, got %v", issues)
	}
}

func TestValidate_DeterministicOrder(t *testing.T) {
	args := map[string]any{}
	first := Validate("set_label", args)
	for i := 0; i < 5; i++ {
		again := Validate("set_label", args)
		if len(again) != len(first) {
			t.Fatalf("issue count changed between runs")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("issue order changed: %v vs %v", again, first)
			}
		}
	}
}
