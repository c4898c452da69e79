// Package mcpserver exposes read-only league queries as MCP tools.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mww/league_manager/controller"
	"github.com/sirupsen/logrus"
)

const (
	serverName    = "League Manager"
	serverVersion = "1.0.0"
)

func New(ctrl controller.C, logger *logrus.Logger) *server.DefaultServer {
	h := NewHandler(ctrl, logger)

	s := server.NewDefaultServer(serverName, serverVersion)
	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		tools := h.Tools()
		logger.WithField("tools_count", len(tools)).Debug("listing tools")
		return &mcp.ListToolsResult{Tools: tools}, nil
	})
	s.HandleCallTool(h.Call)
	return s
}
