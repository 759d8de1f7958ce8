package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
)

// parseFunc turns one tool's raw payload into canonical issues.
type parseFunc func(raw json.RawMessage) ([]schema.Issue, error)

// toolParsers binds each supported tool to its parser. Dispatch is closed:
// adding a tool means adding a variant here, not registering at runtime.
var toolParsers = map[schema.Tool]parseFunc{
	schema.Pylint:     parsePylint,
	schema.Flake8:     parseFlake8,
	schema.Bandit:     parseBandit,
	schema.Radon:      parseRadon,
	schema.Pyright:    parsePyright,
	schema.Pydocstyle: parsePydocstyle,
}

// NormalizeIssues flattens every tool's raw payload into one issue sequence
// for a single file. Tools are visited in the fixed schema.AllTools order so
// the output is deterministic for a given input. A tool whose payload is the
// failure marker or cannot be decoded contributes zero issues; it never
// aborts normalization of the other tools.
func NormalizeIssues(raw schema.ToolResults, exclude []schema.Tool) []schema.Issue {
	excluded := make(map[schema.Tool]struct{}, len(exclude))
	for _, t := range exclude {
		excluded[t] = struct{}{}
	}

	issues := []schema.Issue{}
	for _, tool := range schema.AllTools {
		if _, skip := excluded[tool]; skip {
			continue
		}
		payload, ok := raw[tool]
		if !ok || len(payload) == 0 {
			continue
		}
		if msg, failed := failureMarker(payload); failed {
			contract.LogWarn(fmt.Sprintf("Tool %s reported an execution error: %s", tool, msg), nil)
			continue
		}

		parsed, err := toolParsers[tool](payload)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping malformed %s payload", tool), err)
			continue
		}
		issues = append(issues, parsed...)
	}
	return issues
}

// failureMarker reports whether the payload is the {"error": "..."} shape
// that substitutes for a tool's normal output when execution failed.
func failureMarker(raw json.RawMessage) (string, bool) {
	var marker struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(raw, &marker); err != nil {
		return "", false // Not an object; let the tool parser decide.
	}
	if marker.Error == nil {
		return "", false
	}
	return *marker.Error, true
}

// newIssue builds one canonical issue, resolving category, metric and the
// unified severity through the taxonomy tables.
func newIssue(tool schema.Tool, ruleID string, line int, message string) schema.Issue {
	category, metric := MapRule(tool, ruleID)
	return schema.Issue{
		Tool:     tool,
		Category: category,
		Metric:   metric,
		RuleID:   ruleID,
		Line:     line,
		Severity: DefaultSeverity(metric),
		Message:  message,
	}
}

// parsePylint handles pylint's flat JSON list.
func parsePylint(raw json.RawMessage) ([]schema.Issue, error) {
	var items []struct {
		MessageID string `json:"message-id"`
		Line      int    `json:"line"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	issues := make([]schema.Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, newIssue(schema.Pylint, item.MessageID, item.Line, item.Message))
	}
	return issues, nil
}

// parseFlake8 handles flake8's object keyed by file path. All inner lists
// are traversed regardless of the outer key, in sorted key order for
// deterministic output.
func parseFlake8(raw json.RawMessage) ([]schema.Issue, error) {
	var byFile map[string][]struct {
		Code       string `json:"code"`
		LineNumber int    `json:"line_number"`
		Text       string `json:"text"`
	}
	if err := json.Unmarshal(raw, &byFile); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(byFile))
	for k := range byFile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var issues []schema.Issue
	for _, key := range keys {
		for _, item := range byFile[key] {
			issues = append(issues, newIssue(schema.Flake8, item.Code, item.LineNumber, item.Text))
		}
	}
	return issues, nil
}

// parseBandit handles bandit's flat result list.
func parseBandit(raw json.RawMessage) ([]schema.Issue, error) {
	var items []struct {
		TestID     string `json:"test_id"`
		LineNumber int    `json:"line_number"`
		IssueText  string `json:"issue_text"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	issues := make([]schema.Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, newIssue(schema.Bandit, item.TestID, item.LineNumber, item.IssueText))
	}
	return issues, nil
}

// parseRadon handles radon's flat list. The complexity value itself becomes
// the rule ID, which the summary builder later decodes for scoring.
func parseRadon(raw json.RawMessage) ([]schema.Issue, error) {
	var items []struct {
		Complexity int    `json:"complexity"`
		Line       int    `json:"line"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	issues := make([]schema.Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, newIssue(schema.Radon, strconv.Itoa(item.Complexity), item.Line, item.Message))
	}
	return issues, nil
}

// parsePyright handles pyright's nested diagnostics object.
func parsePyright(raw json.RawMessage) ([]schema.Issue, error) {
	var payload struct {
		GeneralDiagnostics []struct {
			Rule  string `json:"rule"`
			Range struct {
				Start struct {
					Line int `json:"line"`
				} `json:"start"`
			} `json:"range"`
			Message string `json:"message"`
		} `json:"generalDiagnostics"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	issues := make([]schema.Issue, 0, len(payload.GeneralDiagnostics))
	for _, item := range payload.GeneralDiagnostics {
		issues = append(issues, newIssue(schema.Pyright, item.Rule, item.Range.Start.Line, item.Message))
	}
	return issues, nil
}

// parsePydocstyle handles pydocstyle's flat list.
func parsePydocstyle(raw json.RawMessage) ([]schema.Issue, error) {
	var items []struct {
		Code    string `json:"code"`
		Line    int    `json:"line"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	issues := make([]schema.Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, newIssue(schema.Pydocstyle, item.Code, item.Line, item.Message))
	}
	return issues, nil
}
