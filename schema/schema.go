// Package schema has configs, models and constants for all parts of lintscore.
package schema

import (
	"encoding/json"
	"time"
)

// ToolResults maps each tool to its raw, still-encoded payload. A payload
// may be a JSON array, a JSON object keyed by file, a nested diagnostics
// object, or the failure marker {"error": "..."} when the tool itself
// could not run.
type ToolResults map[Tool]json.RawMessage

// Issue is one normalized diagnostic finding attributable to a single
// tool, category and severity. Issues are produced only by the normalizer
// and never mutated after creation; the sequencer back-fills SummaryID
// once the owning summary has a durable identity.
type Issue struct {
	ID        int64      `json:"id,omitempty"`
	SummaryID int64      `json:"metric_summary_id,omitempty"`
	Tool      Tool       `json:"tool"`
	Category  Category   `json:"metric_category"`
	Metric    MetricName `json:"metric_name"`
	RuleID    string     `json:"rule_id"`
	Line      int        `json:"line"`
	Severity  Severity   `json:"severity"`
	Message   string     `json:"message"`
}

// MetricSummary groups the issues of one (file, category) pair together
// with the category score. IssueCount always equals len(Issues).
type MetricSummary struct {
	ID         int64    `json:"id,omitempty"`
	FileID     int64    `json:"file_id,omitempty"`
	Category   Category `json:"metric_category"`
	IssueCount int      `json:"issue_count"`
	Score      float64  `json:"score"`
	Issues     []Issue  `json:"issues"`
}

// FileResult is the persisted per-file outcome of an analysis run.
type FileResult struct {
	ID         int64   `json:"id,omitempty"`
	AnalysisID string  `json:"analysis_id"`
	FilePath   string  `json:"file_path"`
	TotalScore float64 `json:"total_score"`
}

// AnalysisRun identifies one batch of analyzed files.
type AnalysisRun struct {
	ID        string    `json:"id"`
	FileCount int       `json:"file_count"`
	CreatedAt time.Time `json:"created_at"`
	Status    RunStatus `json:"status"`
}

// WeightSnapshot is one persisted (run, category) weight row. The most
// recent run's rows are the only ones consulted on the next run.
type WeightSnapshot struct {
	ID            int64     `json:"id,omitempty"`
	AnalysisID    string    `json:"analysis_id"`
	Category      Category  `json:"metric_category"`
	Weight        float64   `json:"weight"`
	WeightedError float64   `json:"weighted_error"`
	CreatedAt     time.Time `json:"created_at"`
}

// WeightTable maps each weighted category to its weight.
type WeightTable map[Category]float64

// ErrorTable maps each category to its weighted error E_k for one run.
type ErrorTable map[Category]float64

// Clone returns a copy of the table.
func (w WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Sum returns the sum of all weights.
func (w WeightTable) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// FileReport is the user-facing result for one file in a batch. A failed
// file carries its error message and an empty issue list instead of
// aborting the batch.
type FileReport struct {
	FileName string     `json:"file_name"`
	FilePath string     `json:"file_path"`
	Status   FileStatus `json:"status"`
	Score    float64    `json:"score,omitempty"`
	Issues   []Issue    `json:"issues"`
	Error    string     `json:"error,omitempty"`

	// Summaries are carried for batch-level aggregation and persistence;
	// they are not part of the response payload.
	Summaries []MetricSummary `json:"-"`
}

// BatchReport is the user-facing result of one analysis run.
type BatchReport struct {
	AnalysisID string       `json:"analysis_id"`
	Status     RunStatus    `json:"status"`
	FileCount  int          `json:"file_count"`
	Results    []FileReport `json:"results"`
}

// FileTree is one file of a reconstructed run with its summaries and issues.
type FileTree struct {
	File      FileResult      `json:"file"`
	Summaries []MetricSummary `json:"metric_summaries"`
}

// RunTree is the full reconstructed state of one historical run.
type RunTree struct {
	Analysis AnalysisRun `json:"analysis"`
	Files    []FileTree  `json:"files"`
}
