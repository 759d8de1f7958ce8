package cmd

import (
	"github.com/lintscore/lintscore/core"
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/internal/outwriter"
	"github.com/spf13/cobra"
)

// compareCmd compares two persisted runs.
var compareCmd = &cobra.Command{
	Use:   "compare <run-id-1> <run-id-2>",
	Short: "Compare two historical analysis runs",
	Long: `Compare two persisted analysis runs category by category.

For every category the comparison shows average issues per file,
average score, percentage of files with issues, and the severity
distribution, each classified as improved, worsened or unchanged.
An overall weighted score summarizes the movement between the runs.

Ideal for:
- Progress tracking - monitor quality improvements over time
- Refactoring validation - verify cleanups actually reduced issues
- Regression detection - catch categories getting worse

Examples:
  # Compare two runs by ID (see 'lintscore runs' for IDs)
  lintscore compare 6f1f... 9c2a...

  # Export the comparison as JSON
  lintscore compare 6f1f... 9c2a... --output json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, args []string) {
		tree1, err := resultStore.GetRunTree(args[0])
		if err != nil {
			contract.LogFatal("Cannot load first run", err)
		}
		tree2, err := resultStore.GetRunTree(args[1])
		if err != nil {
			contract.LogFatal("Cannot load second run", err)
		}

		cmp := core.CompareRuns(tree1, tree2)
		if err := outwriter.WriteComparisonResults(cmp, cfg); err != nil {
			contract.LogFatal("Cannot write comparison", err)
		}
	},
}
