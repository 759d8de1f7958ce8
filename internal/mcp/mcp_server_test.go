package mcp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lintscore/lintscore/internal/contract"
	mcp_internal "github.com/lintscore/lintscore/internal/mcp"
	"github.com/lintscore/lintscore/internal/store"
	"github.com/lintscore/lintscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	return tool.Handler(context.Background(), req)
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Workers: 2}
	runner := &contract.MockToolRunner{}
	rs := &store.MockResultStore{}

	s := mcp_internal.NewMCPServer(baseCfg, runner, rs)

	t.Run("analyze_files missing paths", func(t *testing.T) {
		res, err := callTool(t, s, "analyze_files", map[string]any{"paths": ""})
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no file paths given")
	})

	t.Run("analyze_files invalid exclude list", func(t *testing.T) {
		res, err := callTool(t, s, "analyze_files", map[string]any{
			"paths":   "a.py",
			"exclude": "eslint",
		})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid exclude list")
	})

	t.Run("compare_runs missing ids", func(t *testing.T) {
		res, err := callTool(t, s, "compare_runs", map[string]any{
			"run_id_1": "run-1",
			"run_id_2": "",
		})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "run_id_2")
	})

	t.Run("get_run missing id", func(t *testing.T) {
		res, err := callTool(t, s, "get_run", map[string]any{"run_id": ""})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "run_id is required")
	})
}

func TestMCPServerHandlers_StoreErrors(t *testing.T) {
	baseCfg := &contract.Config{Workers: 2}
	runner := &contract.MockToolRunner{}

	rs := &store.MockResultStore{}
	rs.On("GetRunTree", "missing-run").Return(nil, errors.New("analysis missing-run not found"))

	s := mcp_internal.NewMCPServer(baseCfg, runner, rs)

	res, err := callTool(t, s, "get_run", map[string]any{"run_id": "missing-run"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "missing-run")
}

func TestMCPServerHandlers_ListRuns(t *testing.T) {
	baseCfg := &contract.Config{Workers: 2}
	runner := &contract.MockToolRunner{}

	rs := &store.MockResultStore{}
	rs.On("ListRuns").Return([]schema.AnalysisRun{
		{ID: "run-1", FileCount: 2, Status: schema.RunSuccess},
	}, nil)

	s := mcp_internal.NewMCPServer(baseCfg, runner, rs)

	res, err := callTool(t, s, "list_runs", map[string]any{})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "run-1")
}
