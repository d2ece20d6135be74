package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List stored transducers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, false, nil)
			ids, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				summary, err := svc.Describe(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d states\n", summary.ID, summary.Name, summary.States)
			}
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <model-id>...",
	Short: "Delete stored transducers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store cli.Store) error {
			svc := cli.NewService(store, logger, false, nil)
			for _, id := range args {
				if err := svc.Delete(cmd.Context(), id); err != nil {
					return err
				}
				logger.Info("model deleted", "id", id)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(deleteCmd)
}
