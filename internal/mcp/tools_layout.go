package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"sketchboard/internal/domain"
)

func (s *Server) registerLayoutTools() {
	s.mcp.AddTool(mcp.NewTool("layout_grid",
		mcp.WithDescription("Arrange elements in a grid: the listed ids are placed left-to-right, top-to-bottom in the given number of columns starting at origin. Unknown ids are reported; the rest are still laid out."),
		mcp.WithArray("ids", mcp.Description("Element ids, in cell order"), mcp.Required()),
		mcp.WithObject("origin", mcp.Description("Top-left corner {x, y} of the grid"), mcp.Required()),
		mcp.WithNumber("cols", mcp.Description("Number of columns (>= 1)"), mcp.Required()),
		mcp.WithNumber("gapX", mcp.Description("Horizontal gap between cells (default 40)")),
		mcp.WithNumber("gapY", mcp.Description("Vertical gap between rows (default 40)")),
	), s.handleLayoutGrid)

	s.mcp.AddTool(mcp.NewTool("suggest_position",
		mcp.WithDescription("Suggest a free grid-snapped position for a new element of the given size that does not overlap anything already on the canvas"),
		mcp.WithNumber("width", mcp.Description("Element width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("Element height"), mcp.Required()),
	), s.handleSuggestPosition)

	s.mcp.AddTool(mcp.NewTool("get_viewport",
		mcp.WithDescription("Get the saved camera state (pan and zoom)"),
	), s.handleGetViewport)

	s.mcp.AddTool(mcp.NewTool("set_viewport",
		mcp.WithDescription("Save the camera state (pan and zoom) so the renderer restores it next session"),
		mcp.WithNumber("x", mcp.Description("Pan X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Pan Y"), mcp.Required()),
		mcp.WithNumber("zoom", mcp.Description("Zoom factor (0.01 - 100)"), mcp.Required()),
	), s.handleSetViewport)
}

func (s *Server) handleLayoutGrid(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("layout_grid", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	origin := argObject(args, "origin")
	box := domain.Box{}
	box.X, _ = argFloat(origin, "x")
	box.Y, _ = argFloat(origin, "y")
	cols, _ := argFloat(args, "cols")
	gapX, _ := argFloat(args, "gapX")
	gapY, _ := argFloat(args, "gapY")

	laidOut, notFound := s.scenes.LayoutGrid(ctx, argStrings(args, "ids"), box, int(cols), gapX, gapY)
	return jsonResult(envelope(map[string]any{
		"laidOut":  emptyAsList(laidOut),
		"notFound": emptyAsList(notFound),
	}))
}

func (s *Server) handleSuggestPosition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("suggest_position", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	w, _ := argFloat(args, "width")
	h, _ := argFloat(args, "height")
	x, y := s.scenes.SuggestPosition(w, h)
	return jsonResult(envelope(map[string]any{"x": x, "y": y}))
}

func (s *Server) handleGetViewport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vp, err := s.scenes.Viewport()
	if err != nil {
		return jsonResult(failure(errTransport, map[string]any{"message": err.Error()}))
	}
	return jsonResult(envelope(map[string]any{"viewport": vp}))
}

func (s *Server) handleSetViewport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("set_viewport", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	vp := domain.Viewport{}
	vp.X, _ = argFloat(args, "x")
	vp.Y, _ = argFloat(args, "y")
	vp.Zoom, _ = argFloat(args, "zoom")
	if err := s.scenes.SetViewport(vp); err != nil {
		return jsonResult(failure(errTransport, map[string]any{"message": err.Error()}))
	}
	return jsonResult(envelope(map[string]any{"viewport": vp}))
}
