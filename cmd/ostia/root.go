package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
	"github.com/aretw0/ostia/internal/config"
	"github.com/aretw0/ostia/internal/logging"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ostia",
	Short: "Ostia learns subsequential transducers from examples",
	Long: `Ostia infers a subsequential transducer from input/output samples using
the OSTIA state-merging algorithm, stores the result, and applies it to new
inputs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("store") {
			loaded.Store.Backend, _ = cmd.Flags().GetString("store")
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		level, err := logging.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("store", "", "Model store backend: memory, file, redis, sqlite")
}

func debugEnabled() bool {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	return level <= slog.LevelDebug
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(cli.Store) error) error {
	store, err := cli.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()
	return fn(store)
}
