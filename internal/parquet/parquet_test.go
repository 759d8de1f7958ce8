package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRuns(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []schema.AnalysisRun{
		{ID: "run-1", FileCount: 3, CreatedAt: created, Status: schema.RunSuccess},
	}

	rows := ConvertRuns(runs)
	require.Len(t, rows, 1)
	assert.Equal(t, "run-1", rows[0].AnalysisID)
	assert.Equal(t, int32(3), rows[0].FileCount)
	assert.Equal(t, created, rows[0].CreatedAt)
	assert.Equal(t, "success", rows[0].Status)
}

func TestConvertRunTree(t *testing.T) {
	tree := &schema.RunTree{
		Analysis: schema.AnalysisRun{ID: "run-1"},
		Files: []schema.FileTree{
			{
				File: schema.FileResult{AnalysisID: "run-1", FilePath: "a.py", TotalScore: 85.5},
				Summaries: []schema.MetricSummary{
					{Category: schema.CodeStyle, IssueCount: 2, Score: 97.0},
					{Category: schema.Documentation, IssueCount: 1, Score: 0.90},
				},
			},
			{
				File: schema.FileResult{AnalysisID: "run-1", FilePath: "b.py", TotalScore: 100.0},
			},
		},
	}

	rows := ConvertRunTree(tree)
	require.Len(t, rows, 2)

	withIssues := rows[0]
	assert.Equal(t, "a.py", withIssues.FilePath)
	assert.Equal(t, int32(3), withIssues.IssueCount)
	assert.Equal(t, 97.0, withIssues.ScoreStyle)
	// Categories without a summary export as perfect.
	assert.Equal(t, 100.0, withIssues.ScoreComplexity)
	require.NotNil(t, withIssues.DocumentationRatio)
	assert.Equal(t, 0.90, *withIssues.DocumentationRatio)

	clean := rows[1]
	assert.Zero(t, clean.IssueCount)
	assert.Equal(t, 100.0, clean.ScoreStyle)
	assert.Nil(t, clean.DocumentationRatio)
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	rows := []AnalysisRun{
		{AnalysisID: "run-1", CreatedAt: time.Now().UTC(), FileCount: 1, Status: "success"},
	}

	require.NoError(t, WriteAnalysisRunsParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteFileScoresParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.parquet")
	ratio := 0.95
	rows := []FileScore{
		{
			AnalysisID:         "run-1",
			FilePath:           "a.py",
			TotalScore:         88.0,
			IssueCount:         4,
			ScoreStyle:         96.0,
			DocumentationRatio: &ratio,
		},
	}

	require.NoError(t, WriteFileScoresParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
