// Package mcpserver is the tool dispatcher: the remote procedure
// surface an AI agent drives the scene through. Every call is
// schema-validated before it reaches the store, and every outcome —
// success, validation failure, not-found — comes back as a decodable
// JSON envelope, never a transport error.
package mcpserver

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"sketchboard/internal/service"
)

// Server is the MCP server exposing the scene tools.
type Server struct {
	mcp    *server.MCPServer
	scenes *service.SceneService
}

// Deps holds the dependencies injected from the app layer.
type Deps struct {
	Scenes *service.SceneService
}

// New creates and configures the MCP server with all tools and
// resources registered.
func New(deps Deps) *Server {
	s := &Server{scenes: deps.Scenes}

	s.mcp = server.NewMCPServer(
		"sketchboard",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)

	s.registerSceneTools()
	s.registerConnectTools()
	s.registerLayoutTools()
	s.registerResources()

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the host
// disconnects.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}
