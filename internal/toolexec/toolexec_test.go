package toolexec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRadonOutput(t *testing.T) {
	out := `{"app.py": [
		{"type": "function", "name": "simple", "lineno": 3, "complexity": 2},
		{"type": "function", "name": "tangled", "lineno": 40, "complexity": 15}
	]}`

	raw, err := parseRadonOutput(out)
	require.NoError(t, err)

	var issues []map[string]any
	require.NoError(t, json.Unmarshal(raw, &issues))

	// Only the block above the threshold survives.
	require.Len(t, issues, 1)
	assert.Equal(t, "function", issues[0]["object_type"])
	assert.Equal(t, "tangled", issues[0]["name"])
	assert.Equal(t, 40.0, issues[0]["line"])
	assert.Equal(t, 15.0, issues[0]["complexity"])
	assert.Equal(t, "function `tangled` has cyclomatic complexity 15", issues[0]["message"])
}

func TestParseRadonOutput_StripsANSI(t *testing.T) {
	out := "\x1b[1m{\"app.py\": [{\"type\": \"method\", \"name\": \"m\", \"lineno\": 5, \"complexity\": 12}]}\x1b[0m"

	raw, err := parseRadonOutput(out)
	require.NoError(t, err)

	var issues []map[string]any
	require.NoError(t, json.Unmarshal(raw, &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, "m", issues[0]["name"])
}

func TestParseRadonOutput_EmptyAndClean(t *testing.T) {
	raw, err := parseRadonOutput("")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))

	raw, err = parseRadonOutput(`{"app.py": [{"type": "function", "name": "f", "lineno": 1, "complexity": 10}]}`)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestParseRadonOutput_InvalidJSON(t *testing.T) {
	_, err := parseRadonOutput("not json at all")
	assert.Error(t, err)
}

func TestParsePydocstyleOutput(t *testing.T) {
	out := `app.py:1 at module level:
        D100: Missing docstring in public module
app.py:14 in public function greet:
        D400: First line should end with a period`

	raw, err := parsePydocstyleOutput(out)
	require.NoError(t, err)

	var issues []map[string]any
	require.NoError(t, json.Unmarshal(raw, &issues))
	require.Len(t, issues, 2)

	assert.Equal(t, "D100", issues[0]["code"])
	assert.Equal(t, 1.0, issues[0]["line"])
	assert.Equal(t, "Missing docstring in public module", issues[0]["message"])

	assert.Equal(t, "D400", issues[1]["code"])
	assert.Equal(t, 14.0, issues[1]["line"])
}

func TestParsePydocstyleOutput_Empty(t *testing.T) {
	raw, err := parsePydocstyleOutput("")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestFailureMarkerShape(t *testing.T) {
	marker := failureMarker(errors.New("pylint: executable file not found"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(marker, &payload))
	assert.Equal(t, "pylint: executable file not found", payload["error"])
}

func TestRawListOrEmpty(t *testing.T) {
	raw, err := rawListOrEmpty("  \n")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))

	raw, err = rawListOrEmpty(`[{"message-id": "W0613"}]`)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"message-id": "W0613"}]`, string(raw))
}

func TestNewExecRunner_CoversAllTools(t *testing.T) {
	runner := NewExecRunner()
	assert.Len(t, runner.tools, 6)
}
