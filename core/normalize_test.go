package core

import (
	"encoding/json"
	"testing"

	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() schema.ToolResults {
	return schema.ToolResults{
		schema.Pylint: json.RawMessage(`[
			{"message-id": "R0915", "line": 10, "message": "Too many statements"},
			{"message-id": "W0613", "line": 22, "message": "Unused argument 'x'"}
		]`),
		schema.Flake8: json.RawMessage(`{
			"app.py": [
				{"code": "E501", "line_number": 3, "text": "line too long"},
				{"code": "N801", "line_number": 7, "text": "class name should use CapWords"}
			]
		}`),
		schema.Bandit: json.RawMessage(`[
			{"test_id": "B105", "line_number": 1, "issue_text": "hardcoded password"}
		]`),
		schema.Radon: json.RawMessage(`[
			{"complexity": 15, "line": 40, "message": "function 'f' has cyclomatic complexity 15"}
		]`),
		schema.Pyright: json.RawMessage(`{
			"generalDiagnostics": [
				{"rule": "reportUndefinedVariable", "range": {"start": {"line": 5}}, "message": "x is not defined"}
			]
		}`),
		schema.Pydocstyle: json.RawMessage(`[
			{"code": "D100", "line": 1, "message": "Missing docstring in public module"}
		]`),
	}
}

func TestNormalizeIssues_AllTools(t *testing.T) {
	issues := NormalizeIssues(sampleResults(), nil)
	require.Len(t, issues, 8)

	// Tools appear in the fixed normalization order.
	assert.Equal(t, schema.Pylint, issues[0].Tool)
	assert.Equal(t, schema.Pylint, issues[1].Tool)
	assert.Equal(t, schema.Flake8, issues[2].Tool)
	assert.Equal(t, schema.Bandit, issues[4].Tool)
	assert.Equal(t, schema.Radon, issues[5].Tool)

	// Spot-check resolved fields.
	first := issues[0]
	assert.Equal(t, schema.CodeSmell, first.Category)
	assert.Equal(t, schema.LongFunctionOrMethod, first.Metric)
	assert.Equal(t, "R0915", first.RuleID)
	assert.Equal(t, 10, first.Line)
	assert.Equal(t, schema.HighSeverity, first.Severity)

	radon := issues[5]
	assert.Equal(t, schema.Complexity, radon.Category)
	assert.Equal(t, "15", radon.RuleID)
}

func TestNormalizeIssues_Deterministic(t *testing.T) {
	raw := sampleResults()
	a := NormalizeIssues(raw, nil)
	b := NormalizeIssues(raw, nil)
	assert.Equal(t, a, b)
}

func TestNormalizeIssues_ExcludedTools(t *testing.T) {
	issues := NormalizeIssues(sampleResults(), []schema.Tool{schema.Pylint, schema.Flake8})
	require.Len(t, issues, 4)
	for _, issue := range issues {
		assert.NotEqual(t, schema.Pylint, issue.Tool)
		assert.NotEqual(t, schema.Flake8, issue.Tool)
	}
}

func TestNormalizeIssues_FailureMarkerIsolated(t *testing.T) {
	raw := sampleResults()
	raw[schema.Pylint] = json.RawMessage(`{"error": "pylint: command not found"}`)

	issues := NormalizeIssues(raw, nil)
	require.Len(t, issues, 6)
	for _, issue := range issues {
		assert.NotEqual(t, schema.Pylint, issue.Tool)
	}
}

func TestNormalizeIssues_MalformedPayloadIsolated(t *testing.T) {
	raw := sampleResults()
	raw[schema.Bandit] = json.RawMessage(`this is not json`)

	issues := NormalizeIssues(raw, nil)
	require.Len(t, issues, 7)
	for _, issue := range issues {
		assert.NotEqual(t, schema.Bandit, issue.Tool)
	}
}

func TestNormalizeIssues_MissingAndEmptyPayloads(t *testing.T) {
	raw := schema.ToolResults{
		schema.Pylint: json.RawMessage(`[]`),
	}
	assert.Empty(t, NormalizeIssues(raw, nil))
	assert.Empty(t, NormalizeIssues(schema.ToolResults{}, nil))
}

func TestNormalizeIssues_UnknownRuleSurvives(t *testing.T) {
	raw := schema.ToolResults{
		schema.Pylint: json.RawMessage(`[{"message-id": "Z9999", "line": 1, "message": "mystery"}]`),
	}
	issues := NormalizeIssues(raw, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.UnknownCategory, issues[0].Category)
	assert.Equal(t, schema.UnknownMetric, issues[0].Metric)
	assert.Equal(t, schema.LowSeverity, issues[0].Severity)
}

func TestFailureMarker(t *testing.T) {
	msg, failed := failureMarker(json.RawMessage(`{"error": "boom"}`))
	assert.True(t, failed)
	assert.Equal(t, "boom", msg)

	_, failed = failureMarker(json.RawMessage(`{"other": "field"}`))
	assert.False(t, failed)

	_, failed = failureMarker(json.RawMessage(`[1, 2, 3]`))
	assert.False(t, failed)
}
