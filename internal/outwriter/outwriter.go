// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteBatch prints batch analysis results using the configured output format.
func (ow *OutWriter) WriteBatch(report *schema.BatchReport, cfg *contract.Config, duration time.Duration) error {
	return WriteBatchResults(report, cfg, duration)
}

// WriteComparison prints run comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(cmp schema.BatchComparison, cfg *contract.Config) error {
	return WriteComparisonResults(cmp, cfg)
}

// WriteRuns prints the historical run listing using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.AnalysisRun, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}

// getMaxTablePathWidth calculates the maximum width for file paths in table output
// based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (Rank + Score + Label + Issues
	// + Status) plus table borders, separators, and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
