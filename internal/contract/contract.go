// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/lintscore/lintscore/schema"
)

// ToolRunner defines the external tool-invocation collaborator. Each tool is
// a black box that returns a raw structured payload; the runner substitutes
// the {"error": "..."} marker when a tool cannot be executed.
// This allows the core pipeline to be tested without any linter installed.
type ToolRunner interface {
	// Run invokes every supported tool (minus the excluded ones) against
	// one file and returns the raw payload per tool.
	Run(ctx context.Context, filePath string, exclude []schema.Tool) (schema.ToolResults, error)
}

// ResultStore defines the persistence interface for analysis runs. Writes
// go through the sequencer, which is the only goroutine that ever touches
// the connection during a batch; reads happen outside any batch.
type ResultStore interface {
	// --- Write path (called by the sequencer only) ---

	// InsertAnalysis creates the analysis row in pending state.
	InsertAnalysis(run schema.AnalysisRun) error

	// InsertFileResult inserts a file row plus its summaries and issues in
	// one transaction, back-filling generated IDs into the summaries and
	// their issues.
	InsertFileResult(file *schema.FileResult, summaries []schema.MetricSummary) error

	// UpdateAnalysisStatus transitions the run to a terminal status.
	UpdateAnalysisStatus(analysisID string, status schema.RunStatus) error

	// SaveWeights inserts one weight_history row per category for the run.
	SaveWeights(analysisID string, weights schema.WeightTable, errs schema.ErrorTable) error

	// --- Read path ---

	// LatestWeights returns the most recent run's weight table and weighted
	// errors. A nil error table signals that no prior run exists.
	LatestWeights() (schema.WeightTable, schema.ErrorTable, error)

	// GetRunTree reconstructs a run's full file/summary/issue tree.
	GetRunTree(analysisID string) (*schema.RunTree, error)

	// ListRuns returns all analysis runs, oldest first.
	ListRuns() ([]schema.AnalysisRun, error)

	// Close closes the underlying connection.
	Close() error
}
