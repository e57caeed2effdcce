package cmd

import (
	"github.com/spf13/cobra"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := store.GetNoteByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printNote(cmd.OutOrStdout(), showFormat, note)
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", formatSimple, "output format (simple, json, yaml)")
}
