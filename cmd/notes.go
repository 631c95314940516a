package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fmea/internal/report"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the ICH Q9 guidance notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), report.Notes())
		return err
	},
}
