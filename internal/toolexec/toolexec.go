// Package toolexec invokes the external analyzer toolchain and collects
// each tool's raw payload for normalization.
package toolexec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
)

// complexityThreshold is the cyclomatic complexity above which a code
// block is reported as an issue.
const complexityThreshold = 10

// emptyList is the payload for tools that produced no findings.
var emptyList = json.RawMessage("[]")

type toolFunc func(ctx context.Context, filePath string) (json.RawMessage, error)

// ExecRunner shells out to the installed analyzer binaries. Each tool
// failure is captured as a failure marker in the payload instead of
// aborting the file, so one broken tool never hides the others' findings.
type ExecRunner struct {
	tools map[schema.Tool]toolFunc
}

var _ contract.ToolRunner = &ExecRunner{} // Compile-time check

// NewExecRunner creates a runner covering the full toolchain.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		tools: map[schema.Tool]toolFunc{
			schema.Pylint:     runPylint,
			schema.Flake8:     runFlake8,
			schema.Bandit:     runBandit,
			schema.Radon:      runRadon,
			schema.Pyright:    runPyright,
			schema.Pydocstyle: runPydocstyle,
		},
	}
}

// Run executes every non-excluded tool against the file. Excluded tools
// are recorded with an empty payload so downstream consumers see a
// complete tool map.
func (r *ExecRunner) Run(ctx context.Context, filePath string, exclude []schema.Tool) (schema.ToolResults, error) {
	results := make(schema.ToolResults, len(schema.AllTools))
	for _, tool := range schema.AllTools {
		if slices.Contains(exclude, tool) {
			results[tool] = emptyList
			continue
		}
		fn, ok := r.tools[tool]
		if !ok {
			continue
		}
		payload, err := fn(ctx, filePath)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Tool %s failed for %s", tool, filePath), err)
			results[tool] = failureMarker(err)
			continue
		}
		results[tool] = payload
	}
	return results, nil
}

// failureMarker encodes a tool failure as the {"error": "..."} payload.
func failureMarker(err error) json.RawMessage {
	marker, _ := json.Marshal(map[string]string{"error": err.Error()})
	return marker
}

// runTool executes one command and returns its stdout. Analyzer binaries
// exit nonzero when they find issues, so exit status alone is not a
// failure; only a missing binary or a killed process is.
func runTool(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s: %w", name, err)
		}
	}
	if stdout.Len() == 0 && stderr.Len() > 0 {
		return "", fmt.Errorf("%s: %s", name, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func runPylint(ctx context.Context, filePath string) (json.RawMessage, error) {
	out, err := runTool(ctx, "pylint", filePath, "--output-format=json", "--score=no")
	if err != nil {
		return nil, err
	}
	return rawListOrEmpty(out)
}

func runFlake8(ctx context.Context, filePath string) (json.RawMessage, error) {
	out, err := runTool(ctx, "flake8", filePath, "--format=json", "--exit-zero")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return emptyList, nil
	}
	return json.RawMessage(out), nil
}

func runBandit(ctx context.Context, filePath string) (json.RawMessage, error) {
	out, err := runTool(ctx, "bandit", filePath, "-f", "json", "-o", "-", "--quiet")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return emptyList, nil
	}

	// The report wraps findings in a "results" field; only that part
	// carries issues.
	var report struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		return nil, fmt.Errorf("bandit produced invalid JSON: %w", err)
	}
	if len(report.Results) == 0 {
		return emptyList, nil
	}
	return report.Results, nil
}

var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// radonBlock is one code block in a radon cyclomatic complexity report.
type radonBlock struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	LineNo     int    `json:"lineno"`
	Complexity int    `json:"complexity"`
}

func runRadon(ctx context.Context, filePath string) (json.RawMessage, error) {
	out, err := runTool(ctx, "radon", "cc", filePath, "-j", "-s")
	if err != nil {
		return nil, err
	}
	return parseRadonOutput(out)
}

// parseRadonOutput filters a radon cyclomatic complexity report down to
// the blocks above the threshold. Radon prints one JSON object per line,
// keyed by file, and may include ANSI color codes.
func parseRadonOutput(out string) (json.RawMessage, error) {
	issues := []map[string]any{}
	clean := ansiEscapes.ReplaceAllString(out, "")
	for _, line := range strings.Split(clean, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var perFile map[string][]radonBlock
		if err := json.Unmarshal([]byte(line), &perFile); err != nil {
			return nil, fmt.Errorf("radon produced invalid JSON: %w", err)
		}
		for _, blocks := range perFile {
			for _, block := range blocks {
				if block.Complexity <= complexityThreshold {
					continue
				}
				issues = append(issues, map[string]any{
					"object_type": block.Type,
					"name":        block.Name,
					"line":        block.LineNo,
					"complexity":  block.Complexity,
					"message": fmt.Sprintf("%s `%s` has cyclomatic complexity %d",
						block.Type, block.Name, block.Complexity),
				})
			}
		}
	}
	return json.Marshal(issues)
}

func runPyright(ctx context.Context, filePath string) (json.RawMessage, error) {
	out, err := runTool(ctx, "pyright", filePath, "--outputjson")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return json.RawMessage(`{"generalDiagnostics": []}`), nil
	}
	return json.RawMessage(out), nil
}

var (
	pydocLocation = regexp.MustCompile(`^(.+?):(\d+)`)
	pydocFinding  = regexp.MustCompile(`^(D\d+):\s+(.*)`)
)

func runPydocstyle(ctx context.Context, filePath string) (json.RawMessage, error) {
	out, err := runTool(ctx, "pydocstyle", filePath)
	if err != nil {
		return nil, err
	}
	return parsePydocstyleOutput(out)
}

// parsePydocstyleOutput converts pydocstyle's plain text report into a
// flat JSON list. The report emits alternating location and finding
// lines; each finding pairs with the most recent location.
func parsePydocstyleOutput(out string) (json.RawMessage, error) {
	issues := []map[string]any{}
	currentLine := 0
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if m := pydocLocation.FindStringSubmatch(line); m != nil && !strings.HasPrefix(line, "D") {
			currentLine, _ = strconv.Atoi(m[2])
			continue
		}
		if m := pydocFinding.FindStringSubmatch(line); m != nil {
			issues = append(issues, map[string]any{
				"code":    m[1],
				"line":    currentLine,
				"message": m[2],
			})
		}
	}
	return json.Marshal(issues)
}

// rawListOrEmpty validates that out is a JSON list, substituting an
// empty list for blank output.
func rawListOrEmpty(out string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return emptyList, nil
	}
	return json.RawMessage(trimmed), nil
}
