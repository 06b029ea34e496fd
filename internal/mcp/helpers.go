package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sketchboard/internal/schema"
)

// Error names used in response envelopes. The agent branches on these,
// so they are part of the tool contract.
const (
	errValidation  = "ValidationError"
	errNotFound    = "NotFound"
	errDuplicateID = "DuplicateId"
	errUnsupported = "UnsupportedType"
	errTransport   = "TransportUnavailable"
)

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// envelope builds a success response with extra payload fields.
func envelope(fields map[string]any) map[string]any {
	out := map[string]any{"success": true}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// failure builds an error response the agent can still decode.
func failure(name string, fields map[string]any) map[string]any {
	out := map[string]any{"success": false, "error": name}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// validationFailure wraps schema issues in the standard envelope.
func validationFailure(issues []schema.Issue) (*mcp.CallToolResult, error) {
	return jsonResult(failure(errValidation, map[string]any{"issues": issues}))
}

// validated runs the registered schema for a tool and reports whether
// the handler may proceed.
func validated(tool string, args map[string]any) []schema.Issue {
	return schema.Validate(tool, args)
}

// ── typed argument access (safe after validation) ──────────

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func argFloat(args map[string]any, key string) (float64, bool) {
	f, ok := args[key].(float64)
	return f, ok
}

func argList(args map[string]any, key string) []any {
	l, _ := args[key].([]any)
	return l
}

func argObject(args map[string]any, key string) map[string]any {
	m, _ := args[key].(map[string]any)
	return m
}

func argStrings(args map[string]any, key string) []string {
	var out []string
	for _, v := range argList(args, key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func emptyAsList(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
