package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"sketchboard/internal/connector"
	"sketchboard/internal/scene"
)

func (s *Server) registerConnectTools() {
	s.mcp.AddTool(mcp.NewTool("connect_elements",
		mcp.WithDescription("Create arrows between pairs of existing elements. Endpoints are anchored on each shape's boundary and bound by id, so arrows can follow their shapes. Invalid pairs are reported in failed; the rest are still created."),
		mcp.WithArray("connections", mcp.Description("Connection requests [{fromId, toId, label?, style?}, ...]"), mcp.Required()),
	), s.handleConnectElements)

	s.mcp.AddTool(mcp.NewTool("set_label",
		mcp.WithDescription("Set the text label on an element. Works on shapes, arrows, and lines; text elements have their text replaced."),
		mcp.WithString("id", mcp.Description("Target element id"), mcp.Required()),
		mcp.WithString("label", mcp.Description("Label text"), mcp.Required()),
	), s.handleSetLabel)
}

func (s *Server) handleConnectElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("connect_elements", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	var reqs []connector.Request
	for _, raw := range argList(args, "connections") {
		c, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		r := connector.Request{
			FromID: argString(c, "fromId"),
			ToID:   argString(c, "toId"),
			Label:  argString(c, "label"),
		}
		if st := argObject(c, "style"); st != nil {
			style := &connector.Style{
				StrokeColor:    argString(st, "strokeColor"),
				StrokeStyle:    argString(st, "strokeStyle"),
				StartArrowhead: argString(st, "startArrowhead"),
				EndArrowhead:   argString(st, "endArrowhead"),
			}
			style.StrokeWidth, _ = argFloat(st, "strokeWidth")
			r.Style = style
		}
		reqs = append(reqs, r)
	}

	res := s.scenes.ConnectElements(ctx, reqs)

	created := make([]string, 0, len(res.Created))
	for _, arrow := range res.Created {
		created = append(created, arrow.ID)
	}
	failed := res.Failed
	if failed == nil {
		failed = []connector.Failure{}
	}
	return jsonResult(envelope(map[string]any{
		"created": created,
		"failed":  failed,
	}))
}

func (s *Server) handleSetLabel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if issues := validated("set_label", args); len(issues) > 0 {
		return validationFailure(issues)
	}

	id := argString(args, "id")
	switch s.scenes.SetLabel(ctx, id, argString(args, "label")) {
	case scene.LabelNotFound:
		return jsonResult(failure(errNotFound, map[string]any{"id": id}))
	case scene.LabelUnsupportedType:
		return jsonResult(failure(errUnsupported, map[string]any{
			"id":      id,
			"message": "element kind cannot bear a label",
		}))
	}
	return jsonResult(envelope(map[string]any{"id": id}))
}
