package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
	"github.com/aretw0/ostia/internal/presentation/tui"
	"github.com/aretw0/ostia/pkg/domain"
)

var translateCmd = &cobra.Command{
	Use:   "translate <model-id> <input>...",
	Short: "Translate strings with a learned transducer",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, debugEnabled(), nil)
			undefined := 0
			for _, input := range args[1:] {
				out, ok, err := svc.Translate(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				if !ok {
					undefined++
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.Result(input, out, ok))
			}
			if strict, _ := cmd.Flags().GetBool("strict"); strict && undefined > 0 {
				return fmt.Errorf("%d of %d inputs undefined", undefined, len(args)-1)
			}
			return nil
		})
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <model-id> <symbol>...",
	Short: "Apply a learned transducer to input symbol indices",
	Long:  `Runs a sequence of input symbol indices through the transducer and prints the output as a JSON array.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := make(domain.Sequence, 0, len(args)-1)
		for _, a := range args[1:] {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid symbol %q: %w", a, err)
			}
			input = append(input, domain.Symbol(n))
		}

		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, debugEnabled(), nil)
			out, ok, err := svc.Apply(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUndefinedTransduction
			}
			if out == nil {
				out = domain.Sequence{}
			}
			data, err := json.Marshal(out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(applyCmd)
	translateCmd.Flags().Bool("strict", false, "Fail when any input is undefined")
}
