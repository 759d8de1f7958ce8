package cmd

import (
	"time"

	"github.com/lintscore/lintscore/core"
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/internal/outwriter"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full analysis pipeline over a batch of files.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file> [file...]",
	Short: "Analyze Python files and score them with the unified taxonomy",
	Long: `Run the analyzer toolchain over one or more Python files.

Each file is processed independently: every tool's findings are folded
into one issue taxonomy, grouped into category summaries, and scored
with the weight table learned from the previous run. Results are
persisted so later runs can be listed and compared.

One failing file never aborts the batch; it is reported as failed and
the rest of the batch completes normally.

Examples:
  # Analyze a couple of files
  lintscore analyze app.py util.py

  # Skip slow tools
  lintscore analyze app.py --exclude pyright,bandit

  # Emit machine-readable output
  lintscore analyze app.py --output json --output-file report.json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		start := time.Now()
		report, err := core.AnalyzeFiles(rootCtx, cfg, args, toolRunner, resultStore)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if err := outwriter.WriteBatchResults(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
