// Package cmd defines the command-line interface for lintscore.
package cmd

import (
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsShowCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of tools to skip (pylint, flake8, bandit, radon, pyright, pydocstyle)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Run store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
