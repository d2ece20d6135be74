package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
	"github.com/aretw0/ostia/internal/presentation/tui"
	"github.com/aretw0/ostia/pkg/alphabet"
)

var learnCmd = &cobra.Command{
	Use:   "learn <samples-file>",
	Short: "Learn a transducer from a sample file",
	Long: `Reads input/output samples from a YAML or JSON file, runs OSTIA, stores the
learned transducer and prints a summary. The model identifier is printed so
later commands can refer to it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := cli.LoadSamples(args[0], cfg)
		if err != nil {
			return err
		}
		if words, _ := cmd.Flags().GetBool("words"); words {
			set.Alphabet = alphabet.Words
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			set.Name = name
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, debugEnabled(), nil)
			summary, err := svc.Learn(cmd.Context(), set)
			if err != nil {
				return fmt.Errorf("learning %s: %w", args[0], err)
			}
			if quiet {
				fmt.Fprintln(cmd.OutOrStdout(), summary.ID)
				return nil
			}

			t, err := svc.Transducer(cmd.Context(), summary.ID)
			if err != nil {
				return err
			}
			tui.PrintBanner(cmd.ErrOrStderr())
			render := tui.NewRenderer()
			out, err := render(tui.Report(t.Model(), *summary.Stats))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.Flags().Bool("words", false, "Tokenise samples on whitespace instead of per character")
	learnCmd.Flags().String("name", "", "Override the model name")
	learnCmd.Flags().BoolP("quiet", "q", false, "Print only the model identifier")
}
