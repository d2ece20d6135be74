package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <model-id>",
	Short: "Export the transducer as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR) of the learned transducer. With --trace the path taken by an input is highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, _ := cmd.Flags().GetString("trace")
		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, false, nil)
			out, err := svc.Graph(cmd.Context(), args[0], trace)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("trace", "", "Highlight the path of this input string")
}
