// Package main provides the entry point for the dex CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

var (
	version       = "0.1.0-dev"
	globalVerbose bool
	globalConfig  *config.Config
	globalLogger  = zap.NewNop()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "dex",
		Short:         "Browse, filter and compare creatures from the PokeAPI catalog",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = globalLogger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newShowCmd(),
		newCompareCmd(),
		newFavCmd(),
		newExportCmd(),
		newIndexCmd(),
		newSimilarCmd(),
		newServeCmd(),
		newCacheCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

// setup loads the configuration and builds the logger shared by all commands.
func setup() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Log.Level, globalVerbose)
	if err != nil {
		return err
	}

	globalConfig = cfg
	globalLogger = logger
	return nil
}

// newLogger builds a console logger on stderr so stdout carries only command output.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	if verbose {
		lvl = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
