package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"sketchboard/internal/domain"
	"sketchboard/internal/scene"
)

func (s *Server) registerSceneTools() {
	s.mcp.AddTool(mcp.NewTool("get_elements",
		mcp.WithDescription("List all scene elements with their IDs, types, positions, text, and colors"),
	), s.handleGetElements)

	s.mcp.AddTool(mcp.NewTool("set_scene",
		mcp.WithDescription("Replace the whole scene with the given elements. Pass an empty list (or omit it) to clear the scene."),
		mcp.WithArray("elements", mcp.Description("Full element objects (each with id, type, x, y and optional size/style/text)")),
	), s.handleSetScene)

	s.mcp.AddTool(mcp.NewTool("add_elements",
		mcp.WithDescription("Add new elements to the scene. Each element needs a fresh id; ids that already exist are rejected as duplicates, not overwritten."),
		mcp.WithArray("elements", mcp.Description("Element objects to append, in z-order"), mcp.Required()),
	), s.handleAddElements)

	s.mcp.AddTool(mcp.NewTool("update_elements",
		mcp.WithDescription("Update properties of existing elements by id (shallow merge). Unknown ids are reported in notFound; the rest still update."),
		mcp.WithArray("updates", mcp.Description("Patch objects [{id, props}, ...] where props holds only the properties to change"), mcp.Required()),
	), s.handleUpdateElements)

	s.mcp.AddTool(mcp.NewTool("remove_elements",
		mcp.WithDescription("Remove elements by id. Bindings pointing at removed elements are dropped; frame children survive their frame."),
		mcp.WithArray("ids", mcp.Description("Element ids to remove"), mcp.Required()),
	), s.handleRemoveElements)

	s.mcp.AddTool(mcp.NewTool("search_elements",
		mcp.WithDescription("Find elements by type, text substring (case-insensitive), and/or bounding box. Criteria combine with AND."),
		mcp.WithString("type", mcp.Description("Element type filter (rectangle, ellipse, diamond, line, arrow, text, image, frame, magicframe)")),
		mcp.WithString("textIncludes", mcp.Description("Substring to match against element text or labels")),
		mcp.WithObject("within", mcp.Description("Bounding box {x, y, width, height} to search inside")),
	), s.handleSearchElements)
}

// ── Handlers ────────────────────────────────────────────────

func (s *Server) handleGetElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	elements := s.scenes.Store().All()

	summaries := make([]domain.Summary, len(elements))
	for i, e := range elements {
		summaries[i] = e.Summarize()
	}

	var minX, minY, maxX, maxY float64
	first := true
	for _, e := range elements {
		if first {
			minX, minY, maxX, maxY = e.X, e.Y, e.X+e.Width, e.Y+e.Height
			first = false
			continue
		}
		if e.X < minX {
			minX = e.X
		}
		if e.Y < minY {
			minY = e.Y
		}
		if e.X+e.Width > maxX {
			maxX = e.X + e.Width
		}
		if e.Y+e.Height > maxY {
			maxY = e.Y + e.Height
		}
	}

	return jsonResult(envelope(map[string]any{
		"elements":      summaries,
		"totalElements": len(elements),
		"boundingBox": map[string]float64{
			"minX": minX, "minY": minY, "maxX": maxX, "maxY": maxY,
			"width": maxX - minX, "height": maxY - minY,
		},
	}))
}

func (s *Server) handleSetScene(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("set_scene", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	elements, err := domain.ElementsFromList(argList(args, "elements"))
	if err != nil {
		return nil, err
	}
	if err := s.scenes.ReplaceScene(ctx, elements); err != nil {
		return jsonResult(failure(errValidation, map[string]any{"message": err.Error()}))
	}
	return jsonResult(envelope(map[string]any{"elements": len(elements)}))
}

func (s *Server) handleAddElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("add_elements", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	elements, err := domain.ElementsFromList(argList(args, "elements"))
	if err != nil {
		return nil, err
	}

	created, duplicates := s.scenes.AddElements(ctx, elements)
	if len(created) == 0 && len(duplicates) > 0 {
		return jsonResult(failure(errDuplicateID, map[string]any{
			"duplicates": duplicates,
		}))
	}
	return jsonResult(envelope(map[string]any{
		"created":    emptyAsList(created),
		"duplicates": emptyAsList(duplicates),
	}))
}

func (s *Server) handleUpdateElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("update_elements", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	var patches []scene.Patch
	for _, raw := range argList(args, "updates") {
		u, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		patches = append(patches, scene.Patch{
			ID:    argString(u, "id"),
			Props: argObject(u, "props"),
		})
	}

	updated, notFound := s.scenes.UpdateElements(ctx, patches)
	if updated == 0 && len(notFound) > 0 {
		return jsonResult(failure(errNotFound, map[string]any{
			"notFound": notFound,
		}))
	}
	return jsonResult(envelope(map[string]any{
		"updated":  updated,
		"notFound": emptyAsList(notFound),
	}))
}

func (s *Server) handleRemoveElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("remove_elements", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	removed, notFound := s.scenes.RemoveElements(ctx, argStrings(args, "ids"))
	return jsonResult(envelope(map[string]any{
		"removed":  emptyAsList(removed),
		"notFound": emptyAsList(notFound),
	}))
}

func (s *Server) handleSearchElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("search_elements", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	q := scene.Query{
		Type:         domain.ElementType(argString(args, "type")),
		TextIncludes: argString(args, "textIncludes"),
	}
	if within := argObject(args, "within"); within != nil {
		box := domain.Box{}
		box.X, _ = argFloat(within, "x")
		box.Y, _ = argFloat(within, "y")
		box.Width, _ = argFloat(within, "width")
		box.Height, _ = argFloat(within, "height")
		q.Within = &box
	}

	matches := s.scenes.Store().Find(q)
	summaries := make([]domain.Summary, len(matches))
	for i, e := range matches {
		summaries[i] = e.Summarize()
	}
	return jsonResult(envelope(map[string]any{
		"elements": summaries,
		"matches":  len(matches),
	}))
}
