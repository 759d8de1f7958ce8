package cmd

import (
	"errors"
	"fmt"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/internal/parquet"
	"github.com/lintscore/lintscore/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd focused on run store data management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the run store and data exports",
	Long: `Manage the persisted analysis history used for scoring and
run comparison.

Every run stores its metadata, per-file scores, category summaries,
normalized issues and the learned weight table. Supported backends:
SQLite (default), MySQL, PostgreSQL, or None (disabled).

Subcommands:
  status  - Show run store statistics
  export  - Export data to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check store health
  lintscore store status

  # Export for analysis in pandas/DuckDB
  lintscore store export --output-file lintscore-data`,
}

// storeStatusCmd shows run store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run store statistics and connection details",
	Long: `Show detailed information about the run store.

Displays:
- Backend type and connection status
- Total number of analysis runs stored
- The most recent run's identifier
- Database table sizes

Examples:
  lintscore store status`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.GetStoreStatus(cfg.Backend, cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		printStoreStatus(status)
	},
}

// printStoreStatus renders store status as plain key-value lines.
func printStoreStatus(status store.StoreStatus) {
	fmt.Printf("Backend:    %s\n", status.Backend)
	fmt.Printf("Connected:  %t\n", status.Connected)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	if status.LastRunID != "" {
		fmt.Printf("Last run:   %s\n", status.LastRunID)
	}
	if len(status.TableSizes) > 0 {
		fmt.Println("Table sizes:")
		for _, table := range []string{"analysis", "file", "metric_summary", "issue", "weight_history"} {
			if count, ok := status.TableSizes[table]; ok {
				fmt.Printf("  %-15s %d\n", table, count)
			}
		}
	}
}

// storeExportCmd exports run data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format for use with
analytics tools.

Exports two datasets, written next to each other:
- <output-file>.runs.parquet   - one row per analysis run
- <output-file>.files.parquet  - one row per analyzed file with
  per-category scores

Requires: --output-file parameter

Examples:
  # Export all data
  lintscore store export --output-file lintscore-data

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('lintscore-data.files.parquet') LIMIT 10"`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export store data", errors.New("--output-file is required"))
		}
		if err := executeStoreExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// executeStoreExport flattens the whole store into the two Parquet datasets.
func executeStoreExport(outputFile string) error {
	runs, err := resultStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		return errors.New("no runs to export")
	}

	runsPath := outputFile + ".runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertRuns(runs), runsPath); err != nil {
		return err
	}

	var fileRows []parquet.FileScore
	for _, run := range runs {
		tree, err := resultStore.GetRunTree(run.ID)
		if err != nil {
			return fmt.Errorf("failed to load run %s: %w", run.ID, err)
		}
		fileRows = append(fileRows, parquet.ConvertRunTree(tree)...)
	}
	filesPath := outputFile + ".files.parquet"
	if err := parquet.WriteFileScoresParquet(fileRows, filesPath); err != nil {
		return err
	}

	fmt.Printf("Exported %d runs to %s and %d file rows to %s\n", len(runs), runsPath, len(fileRows), filesPath)
	return nil
}

// storeMigrateCmd runs database migrations for the run store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  lintscore store migrate

  # Migrate to specific version
  lintscore store migrate --target-version 1

  # Rollback to initial state
  lintscore store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations must run on a fresh database, so skip store
		// initialization and only resolve configuration.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
		if err := viper.Unmarshal(input); err != nil {
			return fmt.Errorf("unable to unmarshal config: %w", err)
		}
		validated, err := input.Validate()
		if err != nil {
			return err
		}
		*cfg = *validated
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateStore(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
