package cmd

import (
	"notetaking-be/pkg/noteclient"

	"github.com/spf13/cobra"
)

var (
	listType   string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if listType != "" {
			err = store.FetchNotesByType(cmd.Context(), noteclient.NoteType(listType))
		} else {
			err = store.FetchNotes(cmd.Context())
		}
		if err != nil {
			return err
		}

		return printNotes(cmd.OutOrStdout(), listFormat, store.Snapshot().Notes)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "only notes of this type (text, audio, image)")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", formatSimple, "output format (simple, table, json, yaml)")
}
