package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lintscore/lintscore/core"
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	runner  contract.ToolRunner
	store   contract.ResultStore
}

func (h *toolHandler) handleAnalyzeFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	paths := splitList(request.GetString("paths", ""))
	if len(paths) == 0 {
		return mcp.NewToolResultError("no file paths given"), nil
	}
	if raw := request.GetString("exclude", ""); raw != "" {
		excludes, err := contract.ParseExcludeTools(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid exclude list: %v", err)), nil
		}
		cfg.ExcludeTools = excludes
	}
	if w := request.GetInt("workers", 0); w > 0 && w <= contract.MaxWorkers {
		cfg.Workers = w
	}

	report, err := core.AnalyzeFiles(ctx, cfg, paths, h.runner, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id1 := request.GetString("run_id_1", "")
	id2 := request.GetString("run_id_2", "")
	if id1 == "" || id2 == "" {
		return mcp.NewToolResultError("both run_id_1 and run_id_2 are required"), nil
	}

	tree1, err := h.store.GetRunTree(id1)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not load run %s: %v", id1, err)), nil
	}
	tree2, err := h.store.GetRunTree(id2)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not load run %s: %v", id2, err)), nil
	}

	cmp := core.CompareRuns(tree1, tree2)
	jsonData, _ := json.MarshalIndent(cmp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRuns(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := h.store.ListRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not list runs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRun(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("run_id", "")
	if id == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	tree, err := h.store.GetRunTree(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not load run %s: %v", id, err)), nil
	}

	jsonData, _ := json.MarshalIndent(tree, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// splitList parses a comma-separated argument into trimmed parts.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
