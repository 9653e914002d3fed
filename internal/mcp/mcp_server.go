// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"os"

	"github.com/kaihendry/setupdeps/core"
	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DepsFactory builds the collaborators for one tool call.
type DepsFactory func(cfg *contract.Config) (core.Deps, error)

// NewMCPServer initializes and configures the setupdeps MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, history contract.HistoryStore, newDeps DepsFactory) *server.MCPServer {
	s := server.NewMCPServer(
		"setupdeps",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		history: history,
		newDeps: newDeps,
	}

	s.AddTool(mcp.NewTool("resolve_ref",
		mcp.WithDescription("Decide which git ref of the dependency would be cloned, without cloning it."),
		mcp.WithString("repo", mcp.Description("GitHub repository in owner/name form (defaults to the configured repo).")),
		mcp.WithString("override", mcp.Description("Explicit ref override, as if PYUNDERSTAND_REF were set.")),
	), h.handleResolveRef)

	s.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recent setup runs recorded in the history store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleListRuns)

	return s
}

// StartMCPServer starts the setupdeps MCP server on stdio.
// Command echoes go to stderr because stdout carries the protocol.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, history contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, history, func(cfg *contract.Config) (core.Deps, error) {
		return core.NewLocalDeps(cfg, os.Stderr, nil)
	})
	return server.ServeStdio(s)
}
