package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var headingsCmd = &cobra.Command{
	Use:   "headings <report.pdf>",
	Short: "List the category headings found in a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cl closers
		defer cl.Close()

		p, err := newProcessor(args[0], &cl)
		if err != nil {
			return err
		}
		hl, warnings, err := p.Headings(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, occ := range hl.Occurrences {
			line := fmt.Sprintf("%s %s", dimStyle.Render(fmt.Sprintf("p.%-4d", occ.Page)), titleStyle.Render(occ.Category))
			if occ.Qualifier != "" {
				line += " " + dimStyle.Render("("+occ.Qualifier+")")
			}
			fmt.Fprintln(w, line)
		}
		FormatWarnings(cmd.ErrOrStderr(), warnings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headingsCmd)
}
