package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── scene://elements ───────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"scene://elements",
		"Scene Elements",
		mcp.WithMIMEType("application/json"),
	), s.handleElementsResource)
}

// handleElementsResource serves the full scene document — the same
// JSON layout the snapshot store persists.
func (s *Server) handleElementsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc := s.scenes.Store().Document()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "scene://elements",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
