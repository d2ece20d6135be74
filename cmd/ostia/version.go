package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ostia",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ostia version %s\n", strings.TrimSpace(ostia.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
