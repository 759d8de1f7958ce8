package cmd

import (
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/internal/outwriter"
	"github.com/spf13/cobra"
)

// runsCmd lists all persisted analysis runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List historical analysis runs",
	Long: `List every persisted analysis run with its file count, creation
time and terminal status.

Run IDs shown here are the inputs to 'lintscore compare' and
'lintscore runs show'.

Examples:
  # List all runs
  lintscore runs

  # List runs as JSON
  lintscore runs --output json`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := resultStore.ListRuns()
		if err != nil {
			contract.LogFatal("Cannot list runs", err)
		}
		if err := outwriter.WriteRunResults(runs, cfg); err != nil {
			contract.LogFatal("Cannot write runs", err)
		}
	},
}

// runsShowCmd dumps one run with all its files, summaries and issues.
var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its files, summaries and issues",
	Long: `Reconstruct a single persisted run: the run row, every analyzed
file with its score, and each file's category summaries with their
normalized issues.

Output is always JSON since the tree is deeply nested.

Examples:
  lintscore runs show 6f1f...`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, args []string) {
		tree, err := resultStore.GetRunTree(args[0])
		if err != nil {
			contract.LogFatal("Cannot load run", err)
		}
		if err := outwriter.WriteJSONTo(cfg.OutputFile, tree); err != nil {
			contract.LogFatal("Cannot write run", err)
		}
	},
}
