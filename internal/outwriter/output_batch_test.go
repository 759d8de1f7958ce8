package outwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchReportFixture() *schema.BatchReport {
	return &schema.BatchReport{
		AnalysisID: "run-1",
		Status:     schema.RunFailed,
		FileCount:  4,
		Results: []schema.FileReport{
			{FileName: "good.py", FilePath: "good.py", Status: schema.FileSuccess, Score: 98.0, Issues: []schema.Issue{}},
			{
				FileName: "bad.py",
				FilePath: "bad.py",
				Status:   schema.FileSuccess,
				Score:    42.0,
				Issues: []schema.Issue{
					{
						Tool:     schema.Bandit,
						Category: schema.SecurityVulnerability,
						Metric:   schema.HardcodedSensitiveInfo,
						RuleID:   "B105",
						Line:     1,
						Severity: schema.HighSeverity,
						Message:  "hardcoded password",
					},
				},
			},
			{FileName: "notes.txt", FilePath: "notes.txt", Status: schema.FileInvalid, Issues: []schema.Issue{}},
			{FileName: "broken.py", FilePath: "broken.py", Status: schema.FileFailed, Error: "tool crashed", Issues: []schema.Issue{}},
		},
	}
}

func TestRankReports(t *testing.T) {
	ranked := rankReports(batchReportFixture().Results)
	require.Len(t, ranked, 4)

	// Failed files first, then invalid, then analyzed files worst-first.
	assert.Equal(t, "broken.py", ranked[0].FilePath)
	assert.Equal(t, "notes.txt", ranked[1].FilePath)
	assert.Equal(t, "bad.py", ranked[2].FilePath)
	assert.Equal(t, "good.py", ranked[3].FilePath)
}

func TestRankReports_TiesBreakOnPath(t *testing.T) {
	results := []schema.FileReport{
		{FilePath: "b.py", Status: schema.FileSuccess, Score: 90.0},
		{FilePath: "a.py", Status: schema.FileSuccess, Score: 90.0},
	}
	ranked := rankReports(results)
	assert.Equal(t, "a.py", ranked[0].FilePath)
	assert.Equal(t, "b.py", ranked[1].FilePath)
}

func TestWriteBatchResults_Table(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	cfg := &contract.Config{
		Workers:    2,
		Precision:  2,
		Output:     schema.TextOut,
		OutputFile: path,
		Backend:    schema.SQLiteBackend,
	}

	require.NoError(t, WriteBatchResults(batchReportFixture(), cfg, 250*time.Millisecond))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "bad.py")
	assert.Contains(t, out, "42.00")
	assert.Contains(t, out, contract.PoorValue)
	assert.Contains(t, out, "Run run-1 (failed): analyzed 2 of 4 files, 1 issues found")
	assert.Contains(t, out, "with 2 workers")
}

func TestWriteBatchResults_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	cfg := &contract.Config{
		Workers:    2,
		Precision:  2,
		Output:     schema.CSVOut,
		OutputFile: path,
	}

	require.NoError(t, WriteBatchResults(batchReportFixture(), cfg, time.Second))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header plus one row per file, issueless files included.
	require.Len(t, records, 5)
	assert.Equal(t, "rank", records[0][0])

	// The failed file carries its error in the message column.
	assert.Equal(t, "broken.py", records[1][1])
	assert.Equal(t, "tool crashed", records[1][len(records[1])-1])

	// The issue row carries the finding details.
	var issueRow []string
	for _, rec := range records[1:] {
		if rec[1] == "bad.py" {
			issueRow = rec
		}
	}
	require.NotNil(t, issueRow)
	assert.Equal(t, "bandit", issueRow[5])
	assert.Equal(t, "B105", issueRow[8])
	assert.Equal(t, "High", issueRow[10])
}

func TestWriteBatchResults_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	cfg := &contract.Config{
		Workers:    2,
		Precision:  2,
		Output:     schema.JSONOut,
		OutputFile: path,
	}

	require.NoError(t, WriteBatchResults(batchReportFixture(), cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"analysis_id": "run-1"`))
	assert.True(t, strings.Contains(out, `"hardcoded password"`))
}
