// ABOUTME: MCP server setup for the liftlog tracker.
// ABOUTME: Exposes routines, today's workout and the weight ledger over stdio.
package mcp

import (
	"context"

	"github.com/harperreed/liftlog/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	username  string
}

// NewServer creates a new MCP server acting for username by default.
func NewServer(t *tracker.Tracker, username string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "liftlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   t,
		username:  username,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// user picks the explicit username or the server default.
func (s *Server) user(username string) string {
	if username != "" {
		return username
	}
	return s.username
}
