package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var paragraphsCmd = &cobra.Command{
	Use:   "paragraphs <report.pdf>",
	Short: "Print the paragraphs of a report, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cl closers
		defer cl.Close()

		p, err := newProcessor(args[0], &cl)
		if err != nil {
			return err
		}
		paragraphs, _, err := p.Paragraphs(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, para := range paragraphs {
			fmt.Fprintf(w, "%s %s\n", dimStyle.Render(fmt.Sprintf("p.%-4d", para.Page)), para.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paragraphsCmd)
}
