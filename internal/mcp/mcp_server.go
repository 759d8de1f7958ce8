// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the lintscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, runner contract.ToolRunner, rs contract.ResultStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Lintscore Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		runner:  runner,
		store:   rs,
	}

	// --- 1. Tool: analyze_files ---
	s.AddTool(mcp.NewTool("analyze_files",
		mcp.WithDescription("Run the static analysis toolchain over a set of Python files and return per-file quality scores."),
		mcp.WithString("paths", mcp.Description("Comma-separated list of file paths to analyze."), mcp.Required()),
		mcp.WithString("exclude", mcp.Description("Comma-separated list of tools to skip (pylint, flake8, bandit, radon, pyright, pydocstyle).")),
		mcp.WithNumber("workers", mcp.Description("Number of concurrent workers to use.")),
	), h.handleAnalyzeFiles)

	// --- 2. Tool: compare_runs ---
	s.AddTool(mcp.NewTool("compare_runs",
		mcp.WithDescription("Compare two historical analysis runs category by category."),
		mcp.WithString("run_id_1", mcp.Description("The earlier run's identifier."), mcp.Required()),
		mcp.WithString("run_id_2", mcp.Description("The later run's identifier."), mcp.Required()),
	), h.handleCompareRuns)

	// --- 3. Tool: list_runs ---
	s.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List all persisted analysis runs with their file counts and statuses."),
	), h.handleListRuns)

	// --- 4. Tool: get_run ---
	s.AddTool(mcp.NewTool("get_run",
		mcp.WithDescription("Fetch one historical run with its files, category summaries and issues."),
		mcp.WithString("run_id", mcp.Description("The run's identifier."), mcp.Required()),
	), h.handleGetRun)

	return s
}

// StartMCPServer starts the lintscore MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, runner contract.ToolRunner, rs contract.ResultStore) error {
	s := NewMCPServer(baseCfg, runner, rs)
	return server.ServeStdio(s)
}
