package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note and its media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteNote(cmd.Context(), args[0]); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Note deleted: %s", args[0])
		return nil
	},
}
