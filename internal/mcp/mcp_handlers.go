package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaihendry/setupdeps/core"
	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	history contract.HistoryStore
	newDeps DepsFactory
}

func (h *toolHandler) handleResolveRef(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if repo := request.GetString("repo", ""); repo != "" {
		if err := contract.ValidateRepo(repo); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		cfg.Repo = repo
	}
	if override := request.GetString("override", ""); override != "" {
		cfg.RefOverride = override
	}

	deps, err := h.newDeps(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("setup failed: %v", err)), nil
	}
	res, err := core.ResolveDependency(core.WithQuiet(ctx), cfg, deps)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolution failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(struct {
		Repo string `json:"repo"`
		schema.Resolution
	}{cfg.Repo, res}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := h.baseCfg.Limit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = min(l, contract.MaxLimit)
	}

	runs := []schema.RunRecord{}
	if h.history != nil {
		found, err := h.history.ListRuns(limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
		}
		runs = append(runs, found...)
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
