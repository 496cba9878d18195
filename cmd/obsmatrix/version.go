package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/obsmatrix/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Skips config loading.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "obsmatrix %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
