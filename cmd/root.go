package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/internal/store"
	"github.com/lintscore/lintscore/internal/toolexec"
	"github.com/lintscore/lintscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// resultStore is the persistence handle shared by all commands.
var resultStore contract.ResultStore

// toolRunner invokes the external analyzer binaries.
var toolRunner contract.ToolRunner

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "lintscore",
	Short:              "Aggregate linter findings into unified quality scores.",
	Long:               `Lintscore runs a toolchain of Python analyzers, folds their findings into one taxonomy, and scores every file with adaptively learned category weights.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".lintscore") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("LINTSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("exclude", "")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation and opens the run store.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	validated, err := input.Validate()
	if err != nil {
		return err
	}
	*cfg = *validated

	// 4. Initialize persistence layer with validated config.
	rs, err := store.NewResultStore(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	resultStore = rs
	toolRunner = toolexec.NewExecRunner()

	return nil
}

// storeSetup loads minimal configuration for commands that only need
// store access, skipping tool runner setup.
func storeSetup(_ *cobra.Command, _ []string) error {
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

	rs, err := store.NewResultStore(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	resultStore = rs
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// CloseStore releases the persistence handle if one was opened.
func CloseStore() {
	if resultStore != nil {
		if err := resultStore.Close(); err != nil {
			contract.LogWarn("Failed to close run store", err)
		}
	}
}
