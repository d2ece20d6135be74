package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <samples-file>",
	Short: "Check a sample file, or check a model against it",
	Long: `Without --model, learns the samples in memory and reports conflicts such as
one input mapped to two outputs. With --model, checks that the stored
transducer reproduces every sample.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := cli.LoadSamples(args[0], cfg)
		if err != nil {
			return err
		}
		id, _ := cmd.Flags().GetString("model")

		if id == "" {
			learner := cli.NewLearner(logger, debugEnabled())
			t, stats, err := learner.LearnSet(cmd.Context(), set)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			if err := t.VerifySet(set); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Samples are consistent: %d samples, %d states ✅\n", stats.Samples, stats.RedStates)
			return nil
		}

		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, false, nil)
			t, err := svc.Transducer(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := t.VerifySet(set); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model %s reproduces all %d samples ✅\n", id, set.Len())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("model", "", "Stored model to check against the samples")
}
